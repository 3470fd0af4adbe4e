package mail

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"morgenstar/config"
	"morgenstar/internal/domain/constants"
	"morgenstar/internal/domain/entity"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"
	"morgenstar/internal/util"
)

//go:embed templates
var templateFS embed.FS

const (
	welcomeTemplate           = "welcome"
	orderConfirmationTemplate = "order_confirmation"
	orderStatusTemplate       = "order_status"

	germanDateLayout = "02.01.2006"
)

type composer struct {
	shopURL string
	html    map[string]*htmltemplate.Template
	text    map[string]*texttemplate.Template
}

// NewComposer parses the embedded templates once.
func NewComposer(cfg *config.Config) (service.MailComposer, error) {
	shopURL := ""
	if cfg.SMTP != nil {
		shopURL = strings.TrimRight(cfg.SMTP.ShopURL, "/")
	}

	c := &composer{
		shopURL: shopURL,
		html:    make(map[string]*htmltemplate.Template),
		text:    make(map[string]*texttemplate.Template),
	}

	for _, name := range []string{welcomeTemplate, orderConfirmationTemplate, orderStatusTemplate} {
		htmlTmpl, err := htmltemplate.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s.html", name)
		}
		textTmpl, err := texttemplate.ParseFS(templateFS, "templates/"+name+".txt")
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s.txt", name)
		}

		c.html[name] = htmlTmpl
		c.text[name] = textTmpl
	}

	return c, nil
}

type baseView struct {
	Title   string
	Name    string
	ShopURL string
}

type itemView struct {
	Title   string
	Variant string
	Qty     int
	Price   string
}

type orderView struct {
	baseView
	ShortID    string
	OrderDate  string
	Items      []itemView
	Discount   string
	CouponCode string
	Total      string
	Shipping   *entity.Address
}

type statusView struct {
	baseView
	ShortID        string
	StatusText     string
	StatusColor    string
	TrackingNumber string
}

// Welcome renders the registration mail.
func (c *composer) Welcome(to, name string) (*service.MailMessage, error) {
	view := baseView{Title: "Willkommen bei Morgenstar", Name: name, ShopURL: c.shopURL}

	return c.render(welcomeTemplate, to, "Willkommen bei Morgenstar!", view)
}

// OrderConfirmation renders the mail sent after checkout.
func (c *composer) OrderConfirmation(to, name string, order *entity.Order) (*service.MailMessage, error) {
	shortID := util.ShortOrderID(order.ID.String())
	view := orderView{
		baseView:   baseView{Title: "Bestellbestätigung", Name: name, ShopURL: c.shopURL},
		ShortID:    shortID,
		OrderDate:  order.CreatedAt.Format(germanDateLayout),
		CouponCode: order.CouponCode,
		Total:      util.FormatEuroGerman(order.TotalCents),
		Shipping:   order.ShippingAddress,
	}
	if order.DiscountCents > 0 {
		view.Discount = util.FormatEuroGerman(order.DiscountCents)
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, itemView{
			Title:   item.ProductTitle,
			Variant: item.VariantName,
			Qty:     item.Qty,
			Price:   util.FormatEuroGerman(item.LineTotalCents()),
		})
	}

	subject := "Bestellbestätigung #" + shortID + " - " + constants.ShopName

	return c.render(orderConfirmationTemplate, to, subject, view)
}

// OrderStatusUpdate renders the mail sent after an admin status change.
func (c *composer) OrderStatusUpdate(to, name string, update *service.OrderStatusMail) (*service.MailMessage, error) {
	shortID := util.ShortOrderID(update.OrderID)
	view := statusView{
		baseView:       baseView{Title: "Bestellstatus Update", Name: name, ShopURL: c.shopURL},
		ShortID:        shortID,
		StatusText:     update.Status.GermanLabel(),
		StatusColor:    statusColor(update.Status),
		TrackingNumber: update.TrackingNumber,
	}

	subject := "Bestellstatus Update #" + shortID + " - " + constants.ShopName

	return c.render(orderStatusTemplate, to, subject, view)
}

func (c *composer) render(name, to, subject string, view any) (*service.MailMessage, error) {
	var htmlBody, textBody bytes.Buffer

	if err := c.html[name].ExecuteTemplate(&htmlBody, name+".html", view); err != nil {
		return nil, errors.Wrapf(err, "failed to render %s.html", name)
	}
	if err := c.text[name].ExecuteTemplate(&textBody, name+".txt", view); err != nil {
		return nil, errors.Wrapf(err, "failed to render %s.txt", name)
	}

	return &service.MailMessage{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody.String(),
		TextBody: textBody.String(),
	}, nil
}

func statusColor(status entity.OrderStatus) string {
	switch status {
	case entity.OrderStatusConfirmed:
		return "#2563eb"
	case entity.OrderStatusShipped:
		return "#7c3aed"
	case entity.OrderStatusDelivered:
		return "#059669"
	case entity.OrderStatusCancelled:
		return "#dc2626"
	default:
		return "#6b7280"
	}
}
