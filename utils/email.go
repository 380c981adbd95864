package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type BookingConfirmationData struct {
	BookingCode  string
	FlightNumber string
	Destination  string
	LaunchDate   string
	FullName     string
}

const bookingConfirmationTemplate = `
<h2>Booking confirmed</h2>
<p>Dear {{.FullName}},</p>
<p>Your seat on flight <b>{{.FlightNumber}}</b> to <b>{{.Destination}}</b> is booked.</p>
<p>Launch date: {{.LaunchDate}}<br>Booking reference: <b>{{.BookingCode}}</b></p>
<p>Present your booking reference at boarding.</p>
`

// SendBookingConfirmationEmail sends the confirmation asynchronously so the
// booking response is not delayed by SMTP. A missing SMTP_HOST disables
// outbound mail entirely.
func SendBookingConfirmationEmail(to string, data BookingConfirmationData) {
	if os.Getenv("SMTP_HOST") == "" {
		return
	}

	go func() {
		tmpl, err := template.New("booking_confirmation").Parse(bookingConfirmationTemplate)
		if err != nil {
			log.Printf("failed to parse confirmation template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render confirmation email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Flight booking "+data.BookingCode)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send confirmation email: %v", err)
		}
	}()
}
