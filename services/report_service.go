package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EmailSender delivers plain-text mail.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type ReportService struct {
	dash  *DashboardService
	users *AuthService
	mail  EmailSender
}

func NewReportService(dash *DashboardService, users *AuthService, mail EmailSender) *ReportService {
	return &ReportService{dash: dash, users: users, mail: mail}
}

// EmailDailyReport mails the owner their totals for the day holding date.
func (s *ReportService) EmailDailyReport(ctx context.Context, ownerID string, date time.Time) (*DayReport, error) {
	if s.mail == nil {
		return nil, errors.New("email is not configured")
	}
	user, err := s.users.FindUserByID(ownerID)
	if err != nil {
		return nil, err
	}
	day, err := s.dash.Day(ctx, ownerID, date, ViewOptions{})
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Your nutrients for %s", day.Date)
	if err := s.mail.SendEmail(ctx, user.Email, subject, FormatDayReport(day)); err != nil {
		return nil, err
	}
	return day, nil
}

// FormatDayReport renders one line per nutrient, e.g.
// "Omega-3: 1.2 / 2 g (60%)".
func FormatDayReport(day *DayReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s), %d meal(s)\n\n", day.Label, day.Date, day.RecordCount)
	for _, n := range day.Nutrients {
		fmt.Fprintf(&sb, "%s: %s / %s %s (%d%%)\n",
			n.Name, fmtAmount(n.Consumed), fmtAmount(n.Goal), n.Unit, int(round2(n.RawPercent*100)))
	}
	return sb.String()
}

func fmtAmount(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64)
}
