package telephony

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// CallPlacer originates outbound calls.
type CallPlacer interface {
	PlaceCall(ctx context.Context, to string) (string, error)
}

// callCreator is the slice of the Twilio REST API used to place calls.
type callCreator interface {
	CreateCall(params *twilioApi.CreateCallParams) (*twilioApi.ApiV2010Call, error)
}

// TwilioCalls places calls whose voice webhook points back at this service.
type TwilioCalls struct {
	api       callCreator
	from      string
	voiceURL  string
	statusURL string
}

// NewTwilioRestClient builds the REST client shared by calls and SMS.
func NewTwilioRestClient(accountSID, authToken string) *twilio.RestClient {
	return twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
}

// NewTwilioCalls answers outbound calls with baseURL+"/voice" and reports
// their status to baseURL+"/status".
func NewTwilioCalls(client *twilio.RestClient, from, baseURL string) *TwilioCalls {
	return newTwilioCalls(client.Api, from, baseURL)
}

func newTwilioCalls(api callCreator, from, baseURL string) *TwilioCalls {
	base := strings.TrimRight(baseURL, "/")
	return &TwilioCalls{
		api:       api,
		from:      from,
		voiceURL:  base + "/voice",
		statusURL: base + "/status",
	}
}

// PlaceCall returns the new call's SID. No conversation exists until the
// callee answers and Twilio posts to /voice.
func (t *TwilioCalls) PlaceCall(ctx context.Context, to string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &twilioApi.CreateCallParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetUrl(t.voiceURL)
	params.SetMethod("POST")
	params.SetStatusCallback(t.statusURL)
	params.SetStatusCallbackMethod("POST")
	params.SetStatusCallbackEvent([]string{"completed"})

	call, err := t.api.CreateCall(params)
	if err != nil {
		return "", fmt.Errorf("twilio create call: %w", err)
	}
	if call == nil || call.Sid == nil {
		return "", errors.New("twilio create call: response has no call sid")
	}
	return *call.Sid, nil
}
