package service

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"propfactor/internal/domain"
	"propfactor/internal/repository"
)

// EmailService renders and sends projection report emails. It only
// formats already-adjusted projections - it never computes them.
type EmailService interface {
	SendProjectionReport(to string, game domain.GameInfo, projections []*domain.AdjustedProjection) error

	// GenerateProjectionReport returns the subject and HTML body without
	// sending, which is also how tests preview the rendering.
	GenerateProjectionReport(game domain.GameInfo, projections []*domain.AdjustedProjection) (string, string, error)
}

type emailServiceHandler struct {
	EmailRepository repository.EmailRepository
}

func NewEmailService(emailRepository repository.EmailRepository) EmailService {
	return &emailServiceHandler{
		EmailRepository: emailRepository,
	}
}

type reportStatLine struct {
	Stat     string
	Baseline string
	Adjusted string
	Floor    string
}

type reportRow struct {
	PlayerName string
	Team       string
	Position   string
	HitPercent string
	Stats      []reportStatLine
}

var reportTemplate = template.Must(template.New("projectionReport").Parse(`
<html>
	<body>
		<h2>{{.GameTitle}}</h2>
		<table border="1" cellpadding="6" cellspacing="0">
			<tr>
				<th>Player</th>
				<th>Team</th>
				<th>Pos</th>
				<th>Stat</th>
				<th>Baseline</th>
				<th>Adjusted</th>
				<th>Floor</th>
				<th>Hit %</th>
			</tr>
			{{range .Rows}}{{$row := .}}{{range .Stats}}
			<tr>
				<td>{{$row.PlayerName}}</td>
				<td>{{$row.Team}}</td>
				<td>{{$row.Position}}</td>
				<td>{{.Stat}}</td>
				<td>{{.Baseline}}</td>
				<td>{{.Adjusted}}</td>
				<td>{{.Floor}}</td>
				<td>{{$row.HitPercent}}</td>
			</tr>
			{{end}}{{end}}
		</table>
	</body>
</html>
`))

func (h *emailServiceHandler) SendProjectionReport(to string, game domain.GameInfo, projections []*domain.AdjustedProjection) error {
	subject, body, err := h.GenerateProjectionReport(game, projections)
	if err != nil {
		return err
	}
	if err := h.EmailRepository.SendEmail(to, subject, body); err != nil {
		return fmt.Errorf("failed to send projection report: %w", err)
	}
	return nil
}

func (h *emailServiceHandler) GenerateProjectionReport(game domain.GameInfo, projections []*domain.AdjustedProjection) (string, string, error) {
	rows := []reportRow{}
	for _, projection := range projections {
		row := reportRow{
			PlayerName: projection.PlayerName,
			Team:       projection.Team,
			Position:   string(projection.Position),
			HitPercent: "-",
		}
		if projection.HitProbability > 0 {
			row.HitPercent = fmt.Sprintf("%.0f%%", projection.HitProbability*100)
		}

		stats := make([]domain.Stat, 0, len(projection.Stats))
		for stat := range projection.Stats {
			stats = append(stats, stat)
		}
		sort.Slice(stats, func(i, j int) bool { return stats[i] < stats[j] })

		for _, stat := range stats {
			line := reportStatLine{
				Stat:     strings.ReplaceAll(string(stat), "_", " "),
				Baseline: fmt.Sprintf("%.1f", projection.Baseline[stat]),
				Adjusted: fmt.Sprintf("%.1f", projection.Stats[stat]),
				Floor:    "-",
			}
			if floor, ok := projection.Floors[stat]; ok {
				line.Floor = fmt.Sprintf("%.1f", floor)
			}
			row.Stats = append(row.Stats, line)
		}
		rows = append(rows, row)
	}

	body := bytes.Buffer{}
	err := reportTemplate.Execute(&body, struct {
		GameTitle string
		Rows      []reportRow
	}{
		GameTitle: game.String(),
		Rows:      rows,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render projection report: %w", err)
	}

	subject := fmt.Sprintf("Projection report: %s", game.String())
	return subject, body.String(), nil
}
