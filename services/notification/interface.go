// Package notification composes and sends the booking emails. Email is a
// best-effort side channel: a send failure never undoes a completed booking.
package notification

import "glowbook/models"

// Mailer delivers a single HTML email.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// Service sends the studio's transactional emails.
type Service interface {
	SendConfirmation(sess *models.BookingSession) error
	SendCancellation(sess *models.BookingSession) error
	SendReschedule(sess *models.BookingSession) error
	// SendContactMessage relays a contact-form submission to the owner.
	SendContactMessage(name, email, message string) error
}
