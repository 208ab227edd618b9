package mlbapi

import "github.com/magabrotheeeer/player-tracker/internal/models"

type describedValue struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type position struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// person запись из ответа /people/{id}. Указатели отличают отсутствующее
// поле от нулевого значения.
type person struct {
	ID               int64           `json:"id"`
	FullName         string          `json:"fullName"`
	PrimaryNumber    *string         `json:"primaryNumber"`
	BirthDate        *string         `json:"birthDate"`
	CurrentAge       *int            `json:"currentAge"`
	BirthCity        *string         `json:"birthCity"`
	BirthCountry     *string         `json:"birthCountry"`
	Height           *string         `json:"height"`
	Weight           *int            `json:"weight"`
	PrimaryPosition  *position       `json:"primaryPosition"`
	NickName         *string         `json:"nickName"`
	MLBDebutDate     *string         `json:"mlbDebutDate"`
	BatSide          *describedValue `json:"batSide"`
	PitchHand        *describedValue `json:"pitchHand"`
	StrikeZoneTop    *float64        `json:"strikeZoneTop"`
	StrikeZoneBottom *float64        `json:"strikeZoneBottom"`
}

type peopleResponse struct {
	People []person `json:"people"`
}

type team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type teamsResponse struct {
	Teams []team `json:"teams"`
}

type rosterEntry struct {
	Person struct {
		ID       int64  `json:"id"`
		FullName string `json:"fullName"`
	} `json:"person"`
}

type rosterResponse struct {
	Roster []rosterEntry `json:"roster"`
}

// toModel нормализует ответ провайдера в карточку игрока.
func (p person) toModel() models.Player {
	player := models.Player{
		ID:               p.ID,
		FullName:         p.FullName,
		PrimaryNumber:    p.PrimaryNumber,
		BirthDate:        p.BirthDate,
		CurrentAge:       p.CurrentAge,
		BirthCity:        p.BirthCity,
		BirthCountry:     p.BirthCountry,
		Height:           p.Height,
		Weight:           p.Weight,
		NickName:         models.NotAvailable,
		MLBDebutDate:     models.NotAvailable,
		StrikeZoneTop:    p.StrikeZoneTop,
		StrikeZoneBottom: p.StrikeZoneBottom,
	}
	if p.PrimaryPosition != nil {
		player.PrimaryPosition = &p.PrimaryPosition.Name
	}
	if p.NickName != nil {
		player.NickName = *p.NickName
	}
	if p.MLBDebutDate != nil {
		player.MLBDebutDate = *p.MLBDebutDate
	}
	if p.BatSide != nil {
		player.BatSide = &p.BatSide.Description
	}
	if p.PitchHand != nil {
		player.PitchHand = &p.PitchHand.Description
	}
	return player
}
