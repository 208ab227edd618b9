package models

// NotAvailable значение по умолчанию для необязательных полей карточки игрока.
const NotAvailable = "N/A"

// TeamNotFound значение teamName, если команда игрока не найдена.
const TeamNotFound = "Team not found"

// Player нормализованная карточка игрока, собираемая из ответа MLB Stats API.
// Поля, которых нет в ответе провайдера, отдаются как null; ноль остаётся нулём.
type Player struct {
	ID               int64    `json:"id"`
	FullName         string   `json:"fullName"`
	PrimaryNumber    *string  `json:"primaryNumber"`
	BirthDate        *string  `json:"birthDate"`
	CurrentAge       *int     `json:"currentAge"`
	BirthCity        *string  `json:"birthCity"`
	BirthCountry     *string  `json:"birthCountry"`
	Height           *string  `json:"height"`
	Weight           *int     `json:"weight"`
	PrimaryPosition  *string  `json:"primaryPosition"`
	NickName         string   `json:"nickName"`
	MLBDebutDate     string   `json:"mlbDebutDate"`
	BatSide          *string  `json:"batSide"`
	PitchHand        *string  `json:"pitchHand"`
	StrikeZoneTop    *float64 `json:"strikeZoneTop"`
	StrikeZoneBottom *float64 `json:"strikeZoneBottom"`
}

// Team команда, в составе которой найден игрок.
type Team struct {
	ID   int64  `json:"teamId"`
	Name string `json:"teamName"`
}

// TeamResult элемент ответа /user/players/teams. TeamID отсутствует,
// если команда не найдена.
type TeamResult struct {
	TeamName string `json:"teamName"`
	TeamID   *int64 `json:"teamId,omitempty"`
}
