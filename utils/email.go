package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strconv"
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/config"

	jwemail "github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// notificationTmpl is the shared HTML shell for every outbound mail.
var notificationTmpl = template.Must(template.New("notification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 30px; text-align: center; color: white;">
    <h1 style="margin: 0; font-size: 24px;">{{.Title}}</h1>
  </div>
  <div style="padding: 30px; background: #f9f9f9;">
    <p style="font-size: 16px; line-height: 1.6; color: #333;">{{.Message}}</p>
    {{if .ActionURL}}
    <div style="text-align: center; margin-top: 30px;">
      <a href="{{.ActionURL}}" style="display: inline-block; padding: 12px 30px; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; text-decoration: none; border-radius: 5px; font-weight: bold;">عرض التفاصيل</a>
    </div>
    {{end}}
  </div>
  <div style="padding: 20px; text-align: center; color: #666; font-size: 12px;">
    <p>© {{.Year}} Damascus Tour Guide. جميع الحقوق محفوظة.</p>
  </div>
</div>`))

type notificationData struct {
	Title     string
	Message   template.HTML
	ActionURL string
	Year      int
}

type BookingEmailData struct {
	BookingNumber string
	PlaceName     string
	BookingDate   time.Time
	TotalAmount   float64
	Currency      string
	ServiceType   string
}

// SendNotificationEmail sends an HTML notification mail asynchronously so the
// calling request is never delayed; failures are logged, never propagated.
func SendNotificationEmail(to, title, message, actionURL string) {
	go func() {
		var body bytes.Buffer
		err := notificationTmpl.Execute(&body, notificationData{
			Title:     title,
			Message:   template.HTML(message),
			ActionURL: actionURL,
			Year:      time.Now().Year(),
		})
		if err != nil {
			log.Printf("failed to render notification email: %v", err)
			return
		}

		host := config.Config("SMTP_HOST")
		port, _ := strconv.Atoi(config.ConfigOr("SMTP_PORT", "587"))
		username := config.Config("SMTP_USER")
		password := config.Config("SMTP_PASS")
		from := config.ConfigOr("SMTP_FROM", username)

		m := gomail.NewMessage()
		m.SetHeader("From", fmt.Sprintf("Damascus Tour Guide <%s>", from))
		m.SetHeader("To", to)
		m.SetHeader("Subject", title)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send email to %s: %v", to, err)
		}
	}()
}

// SendPlainEmail is the synchronous plain-text path, used where the caller
// wants the send result (e.g. password reset).
func SendPlainEmail(to, subject, body string) error {
	host := config.Config("SMTP_HOST")
	port := config.ConfigOr("SMTP_PORT", "587")
	username := config.Config("SMTP_USER")
	password := config.Config("SMTP_PASS")
	from := config.ConfigOr("SMTP_FROM", username)

	e := jwemail.NewEmail()
	e.From = fmt.Sprintf("Damascus Tour Guide <%s>", from)
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)
	return e.Send(host+":"+port, smtp.PlainAuth("", username, password, host))
}

// SendBookingConfirmationEmail notifies the user a booking was registered.
func SendBookingConfirmationEmail(to string, data BookingEmailData) {
	SendNotificationEmail(
		to,
		"تم تسجيل حجزك! ✅",
		fmt.Sprintf(`شكراً لحجزك معنا!<br><br><strong>تفاصيل الحجز:</strong><br>رقم الحجز: %s<br>المكان: %s<br>التاريخ: %s<br>المبلغ: %.0f %s`,
			data.BookingNumber, data.PlaceName,
			data.BookingDate.Format("02/01/2006 15:04"),
			data.TotalAmount, data.Currency),
		fmt.Sprintf("%s/bookings", config.Config("CLIENT_URL")),
	)
}
