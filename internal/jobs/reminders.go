package jobs

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/quizlytics/quizlytics-api/internal/config"
	"github.com/quizlytics/quizlytics-api/internal/quiz"
	"github.com/quizlytics/quizlytics-api/internal/report"
	"github.com/quizlytics/quizlytics-api/internal/user"
	util "github.com/quizlytics/quizlytics-api/internal/utils"
)

// ReminderJob mails users whose configured reminder_time matches the current
// minute in the reporting timezone. Users inactive for more than a day get a
// nudge; active users get the quizzes that opened in the last 24 hours.
type ReminderJob struct {
	userRepo user.UserRepository
	quizRepo quiz.QuizRepository
	mailer   report.Mailer
	now      func() time.Time
}

func NewReminderJob(userRepo user.UserRepository, quizRepo quiz.QuizRepository, mailer report.Mailer) *ReminderJob {
	return &ReminderJob{userRepo: userRepo, quizRepo: quizRepo, mailer: mailer, now: time.Now}
}

func (j *ReminderJob) Run(ctx context.Context) error {
	log := config.WithContext(ctx)
	now := j.now().In(util.ReportingLocation())
	hhmm := now.Format("15:04")

	users, err := j.userRepo.FindWithReminderAt(hhmm)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}

	newQuizzes, err := j.quizRepo.FindStartedBetween(now.Add(-24*time.Hour), now)
	if err != nil {
		return err
	}

	sent, skipped := 0, 0
	for _, u := range users {
		mailed, err := j.remind(u, newQuizzes, now)
		if err != nil {
			log.WithError(err).WithField("user_id", u.ID).
				Error("Failed to send reminder, skipping user")
			continue
		}
		if mailed {
			sent++
		} else {
			skipped++
		}
	}

	log.WithFields(map[string]interface{}{"matched": len(users), "sent": sent, "skipped": skipped}).
		Info("Reminder batch finished")
	return nil
}

// remind reports whether a mail actually went out: active users with nothing
// new to announce are skipped.
func (j *ReminderJob) remind(u *user.User, newQuizzes []*quiz.Quiz, now time.Time) (bool, error) {
	inactive := u.LastVisited == nil || now.Sub(*u.LastVisited) > 24*time.Hour

	if !inactive && len(newQuizzes) == 0 {
		return false, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(u.FullName))
	if inactive {
		b.WriteString("<p>We haven't seen you in a while. Come back and keep your streak going!</p>")
	}
	if len(newQuizzes) > 0 {
		b.WriteString("<p>New quizzes in the last 24 hours:</p><ul>")
		for _, q := range newQuizzes {
			fmt.Fprintf(&b, "<li>%s - %s</li>",
				html.EscapeString(q.Chapter.Subject.Name),
				html.EscapeString(q.Chapter.Name))
		}
		b.WriteString("</ul>")
	}
	b.WriteString("<p>Happy quizzing!</p>")

	if err := j.mailer.Send(u.Email, "Your daily quiz reminder", b.String(), nil); err != nil {
		return false, err
	}
	return true, nil
}
