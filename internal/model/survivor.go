package model

import "time"

// Gender is a catalog entry survivors reference by id.
type Gender struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Survivor is a camp member that holds inventory and can trade.
// IsInfected is flipped only by the infection-report rule; everything else
// treats it as read-only precondition data.
type Survivor struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	GenderID   *int64    `json:"gender_id,omitempty"`
	GenderName string    `json:"gender,omitempty"`
	IsInfected bool      `json:"is_infected"`
	CreatedAt  time.Time `json:"created_at"`
}

// InfectionReport records one survivor flagging another as infected.
// The (author, infected) pair is unique; at ReportThreshold distinct
// reports the reported survivor is marked infected.
type InfectionReport struct {
	ID         int64     `json:"id"`
	AuthorID   int64     `json:"author_id"`
	InfectedID int64     `json:"infected_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReportThreshold is the number of distinct reports that flags a survivor.
const ReportThreshold = 3

// LocationLog is a reported position of a survivor.
type LocationLog struct {
	ID           int64     `json:"id"`
	SurvivorID   int64     `json:"survivor_id"`
	SurvivorName string    `json:"survivor_name,omitempty"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	CreatedAt    time.Time `json:"created_at"`
}
