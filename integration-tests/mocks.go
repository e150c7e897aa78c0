package integration_tests

import (
	"fmt"

	"propfactor/internal/domain"
	"propfactor/internal/repository"
)

// NewFlakyProjectionsRepositoryForTests serves the demo slate but fails
// every secondary context lookup, which is what a half-configured
// provider subscription looks like in the wild.
func NewFlakyProjectionsRepositoryForTests() repository.ProjectionsRepository {
	return flakyProjectionsHandler{demo: repository.NewDemoProjectionsRepository()}
}

type flakyProjectionsHandler struct {
	demo repository.ProjectionsRepository
}

func (m flakyProjectionsHandler) GetGameProjections(game domain.GameInfo) ([]domain.PlayerProjection, error) {
	return m.demo.GetGameProjections(game)
}

func (m flakyProjectionsHandler) GetDepthChart(team string) (map[domain.Position][]string, error) {
	return m.demo.GetDepthChart(team)
}

func (m flakyProjectionsHandler) GetSnapCounts(game domain.GameInfo, team string) (map[string]domain.SnapCounts, error) {
	return nil, fmt.Errorf("snap counts are on the premium plan")
}

func (m flakyProjectionsHandler) GetInjuries(game domain.GameInfo) (map[string]domain.InjuryStatus, error) {
	return nil, fmt.Errorf("injuries are on the premium plan")
}

func (m flakyProjectionsHandler) GetNews(date string) ([]domain.NewsArticle, error) {
	return nil, fmt.Errorf("news is on the premium plan")
}

// NewRecordingEmailRepositoryForTests captures outbound mail instead of
// calling ses.
func NewRecordingEmailRepositoryForTests() *RecordingEmailRepository {
	return &RecordingEmailRepository{}
}

type RecordedEmail struct {
	To      string
	Subject string
	Body    string
}

type RecordingEmailRepository struct {
	Sent []RecordedEmail
}

func (m *RecordingEmailRepository) SendEmail(to string, subject string, body string) error {
	m.Sent = append(m.Sent, RecordedEmail{To: to, Subject: subject, Body: body})
	return nil
}
