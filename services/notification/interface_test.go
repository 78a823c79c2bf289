package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeMessages struct {
	params *twilioApi.CreateMessageParams
}

func (f *fakeMessages) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	return &twilioApi.ApiV2010Message{}, nil
}

func TestSendSMS(t *testing.T) {
	api := &fakeMessages{}
	sender := &TwilioSMSSender{api: api, from: "+15550000000"}

	require.NoError(t, sender.SendSMS(context.Background(), "+15551112222", "See you tomorrow"))
	assert.Equal(t, "+15551112222", *api.params.To)
	assert.Equal(t, "+15550000000", *api.params.From)
	assert.Equal(t, "See you tomorrow", *api.params.Body)
}

func TestSendSMSRejectsEmptyNumber(t *testing.T) {
	api := &fakeMessages{}
	sender := &TwilioSMSSender{api: api, from: "+15550000000"}

	assert.Error(t, sender.SendSMS(context.Background(), "", "hi"))
	assert.Nil(t, api.params)
}
