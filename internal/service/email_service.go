package service

import (
	"context"
	"fmt"
	"time"

	"aisb_backend/internal/config"
	"aisb_backend/internal/model"
	"aisb_backend/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// EmailService sends student notifications over SMTP. A send failure is
// logged and reported as false; it never aborts the workflow that triggered
// it. When an AI client is configured the body copy is generated, with the
// static template as fallback.
type EmailService struct {
	config config.EmailConfig
	ai     *AIService
}

func NewEmailService(cfg config.EmailConfig, ai *AIService) *EmailService {
	return &EmailService{config: cfg, ai: ai}
}

func (s *EmailService) send(to, subject, body string) bool {
	if s.config.Address == "" {
		logger.Log.Info("email transport not configured, skipping send",
			zap.String("to", to), zap.String("subject", subject))
		return false
	}

	m := gomail.NewMessage()
	from := s.config.Address
	if s.config.FromName != "" {
		from = m.FormatAddress(s.config.Address, s.config.FromName)
	}
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.Address, s.config.Password)
	if err := d.DialAndSend(m); err != nil {
		logger.Log.Error("failed to send email",
			zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return false
	}
	return true
}

// generateBody asks the AI client for email copy and falls back to the static
// template on any failure.
func (s *EmailService) generateBody(prompt, fallback string) string {
	if s.ai == nil || !s.ai.Available() {
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	body, err := s.ai.Chat(ctx, "You are a professional communication specialist for an educational program. "+
		"You write clear, encouraging and informative emails to students. Reply with the email body only.", prompt)
	if err != nil || body == "" {
		return fallback
	}
	return body
}

func (s *EmailService) SendRegistrationConfirmation(to, name string) bool {
	subject := "Welcome to AISB - Registration Confirmed!"
	fallback := fmt.Sprintf(`Dear %s,

Welcome to the AISB Student Management System! Your registration has been confirmed.

You can now log in with your email address to take quizzes, submit your video presentation and track your results.

Best regards,
AISB Administration Team`, name)

	prompt := fmt.Sprintf("Write a welcoming registration confirmation email for a student named %s "+
		"who has just registered for the AISB Student Management System. Include a welcome message, "+
		"a brief overview of what they can expect and instructions for logging in. "+
		"Keep the tone professional but friendly and encouraging.", name)

	return s.send(to, subject, s.generateBody(prompt, fallback))
}

func (s *EmailService) SendQuizSubmissionConfirmation(to, name, quizTopic string, submittedAt time.Time) bool {
	subject := fmt.Sprintf("Quiz Submission Confirmed - %s", quizTopic)
	body := fmt.Sprintf(`Dear %s,

Your quiz submission has been received successfully!

Submission Details:
- Quiz Topic: %s
- Submitted At: %s
- Status: Pending Review

You will receive another email once your results are released.

Best regards,
AISB Administration Team`, name, quizTopic, submittedAt.Format("2006-01-02 15:04:05"))

	return s.send(to, subject, body)
}

func (s *EmailService) SendQuizResultNotification(to, name, quizTopic string, score float64, grade, feedback string) bool {
	subject := fmt.Sprintf("Quiz Results Available - %s", quizTopic)
	body := fmt.Sprintf(`Dear %s,

Your results for the quiz on "%s" have been released.

- Score: %.1f%%
- Grade: %s
- Feedback: %s

Best regards,
AISB Administration Team`, name, quizTopic, score, grade, feedback)

	return s.send(to, subject, body)
}

func (s *EmailService) SendVideoSubmissionConfirmation(to, videoID string) bool {
	subject := "Video Submission Confirmation - AISB Student Management System"
	body := fmt.Sprintf(`Dear Student,

Your video submission has been received successfully!

Submission Details:
- Video ID: %s
- Submitted At: %s
- Status: Under Review

Your video will be analyzed and graded shortly. You will receive another email once the analysis is complete.

Thank you for your submission!

Best regards,
AISB Administration Team`, videoID, time.Now().Format("2006-01-02 15:04:05"))

	return s.send(to, subject, body)
}

func (s *EmailService) SendFinalSelectionNotification(to, name string, result model.CombinedResult) bool {
	subject := "Congratulations! You've been selected - AISB Program"
	body := fmt.Sprintf(`Dear %s,

Congratulations! We are pleased to inform you that you have been selected for the AISB program based on your outstanding performance.

Your Final Results:
- Quiz Score: %.1f%%
- Video Assessment Score: %.1f%%
- Total Score: %.1f%%
- Final Grade: %s

You have demonstrated excellent knowledge and presentation skills. We look forward to having you in our program!

Next Steps:
- You will receive further instructions via email within the next 48 hours
- Please keep this email for your records

Once again, congratulations on your achievement!

Best regards,
AISB Selection Committee`, name, result.QuizScore, result.VideoScore, result.TotalScore, result.FinalGrade)

	return s.send(to, subject, body)
}
