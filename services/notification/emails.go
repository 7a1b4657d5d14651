package notification

import (
	"fmt"
	"html"

	"glowbook/models"
)

const bodyStyle = "<style>body {background-color: #FFF6F5; padding: 10px;}</style>"

// DefaultNotificationService implements Service by composing HTML bodies and
// handing them to the Mailer.
type DefaultNotificationService struct {
	Mailer     Mailer
	StudioName string
	OwnerEmail string
	// BaseURL is the public site root used in cancel/reschedule links.
	BaseURL string
}

func (s *DefaultNotificationService) SendConfirmation(sess *models.BookingSession) error {
	body := bodyStyle
	body += "<h1 style=\"font-style:italic; text-decoration:underline;\">You're booked!</h1>"
	body += fmt.Sprintf("<h2>Session with %s</h2>", html.EscapeString(s.StudioName))
	body += fmt.Sprintf("<p>%s</p>", html.EscapeString(sess.ApptDate))
	body += fmt.Sprintf("<p>%s &ndash; %s</p>", sess.ApptTime.Start, sess.ApptTime.End)
	body += fmt.Sprintf("<p><a href=\"%s/booked/%s\">To cancel or reschedule, use this link</a></p>",
		s.BaseURL, sess.EventID)

	subject := fmt.Sprintf("Appointment Confirmation with %s", s.StudioName)
	return s.Mailer.Send(sess.ClientEmail, subject, body)
}

func (s *DefaultNotificationService) SendCancellation(sess *models.BookingSession) error {
	body := bodyStyle
	body += "<h1 style=\"font-style:italic; text-decoration:underline;\">Your appointment has been cancelled.</h1>"
	body += fmt.Sprintf("<h2>Session with %s</h2>", html.EscapeString(s.StudioName))
	body += fmt.Sprintf("<p>%s</p>", html.EscapeString(sess.ApptDate))
	body += fmt.Sprintf("<p>%s &ndash; %s</p>", sess.ApptTime.Start, sess.ApptTime.End)
	body += fmt.Sprintf("<p><a href=\"%s/book\">Use this link to book a different session</a></p>", s.BaseURL)

	subject := fmt.Sprintf("Appointment Cancellation with %s", s.StudioName)
	return s.Mailer.Send(sess.ClientEmail, subject, body)
}

func (s *DefaultNotificationService) SendReschedule(sess *models.BookingSession) error {
	body := bodyStyle
	body += "<h1 style=\"font-style:italic; text-decoration:underline;\">Your appointment has been rescheduled.</h1>"
	body += fmt.Sprintf("<h2>Session with %s</h2>", html.EscapeString(s.StudioName))
	body += fmt.Sprintf("<p>%s</p>", html.EscapeString(sess.ApptDate))
	body += fmt.Sprintf("<p>%s &ndash; %s</p>", sess.ApptTime.Start, sess.ApptTime.End)
	body += fmt.Sprintf("<p><a href=\"%s/booked/%s\">To cancel or reschedule, use this link</a></p>",
		s.BaseURL, sess.EventID)

	subject := fmt.Sprintf("Appointment Rescheduled with %s", s.StudioName)
	return s.Mailer.Send(sess.ClientEmail, subject, body)
}

func (s *DefaultNotificationService) SendContactMessage(name, email, message string) error {
	body := bodyStyle
	body += fmt.Sprintf("<p>Name:&nbsp;&nbsp;%s</p>", html.EscapeString(name))
	body += fmt.Sprintf("<p>Email:&nbsp;&nbsp;%s</p>", html.EscapeString(email))
	body += fmt.Sprintf("<p style=\"white-space:pre-wrap;\">Message:&nbsp;&nbsp;<br>%s</p>",
		html.EscapeString(message))

	subject := fmt.Sprintf("Contact Message from %s", s.StudioName)
	return s.Mailer.Send(s.OwnerEmail, subject, body)
}
