// services/notifier.go
package services

import (
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// Notifier delivers a text message and reports the channel used.
type Notifier interface {
	Send(to, body string) (string, error)
}

type TwilioNotifier struct {
	client       *twilio.RestClient
	from         string
	whatsappFrom string
	log          *zap.Logger
}

func NewTwilioNotifier(accountSid, authToken, from, whatsappFrom string, log *zap.Logger) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from:         from,
		whatsappFrom: whatsappFrom,
		log:          log.Named("twilio"),
	}
}

func (n *TwilioNotifier) Send(to, body string) (string, error) {
	// Use WhatsApp if phone is in E.164 format and a WhatsApp sender exists
	channel := "sms"
	params := &twilioApi.CreateMessageParams{}
	if strings.HasPrefix(to, "+") && n.whatsappFrom != "" {
		channel = "whatsapp"
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + n.whatsappFrom)
	} else {
		params.SetTo(to)
		params.SetFrom(n.from)
	}
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		n.log.Error("send message failed", zap.String("to", to), zap.String("channel", channel), zap.Error(err))
		return channel, err
	}
	if resp.Sid != nil {
		n.log.Info("message sent", zap.String("to", to), zap.String("sid", *resp.Sid))
	} else {
		n.log.Info("message sent without sid", zap.String("to", to))
	}
	return channel, nil
}
