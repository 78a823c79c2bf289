package telephony

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResponder() *Responder {
	return NewResponder(VoiceOptions{Voice: "Polly.Aditi", Language: "en-IN"})
}

func TestGreetingCollectsSpeech(t *testing.T) {
	doc, err := testResponder().Greeting()
	require.NoError(t, err)

	assert.Contains(t, doc, "<Response>")
	assert.Contains(t, doc, "<Gather")
	assert.Contains(t, doc, `input="speech"`)
	assert.Contains(t, doc, `action="/process"`)
	assert.Contains(t, doc, `method="POST"`)
	assert.Contains(t, doc, `timeout="5"`)
	assert.Contains(t, doc, `voice="Polly.Aditi"`)
	assert.Contains(t, doc, `language="en-IN"`)
	assert.Contains(t, doc, GreetingText)
}

func TestSayDoesNotCollect(t *testing.T) {
	for name, render := range map[string]func(*Responder) (string, error){
		"closing": (*Responder).Closing,
		"apology": (*Responder).Apology,
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := render(testResponder())
			require.NoError(t, err)
			assert.Contains(t, doc, "<Say")
			assert.NotContains(t, doc, "<Gather")
		})
	}
}

func TestAskUsesConfiguredGather(t *testing.T) {
	r := NewResponder(VoiceOptions{GatherTimeout: 8, ProcessPath: "/calls/process"})

	doc, err := r.Ask("What date suits you")
	require.NoError(t, err)
	assert.Contains(t, doc, `timeout="8"`)
	assert.Contains(t, doc, `action="/calls/process"`)
	assert.Contains(t, doc, "What date suits you")
}
