package cmd

import "time"

// Config carries everything the composition root needs to wire the service:
// the database, the four remote services, the message broker, the catalogue
// file and the background job cadence.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	NatsURL             string
	SetServiceURL       string
	MaterialsServiceURL string
	StudyServiceURL     string
	CataloguePath       string

	RemoteTimeout         time.Duration
	SubmissionJobSchedule string
}
