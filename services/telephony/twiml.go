package telephony

import (
	"strconv"

	"github.com/twilio/twilio-go/twiml"
)

// Lines spoken by the bot outside of the AI conversation.
const (
	GreetingText = "Hello! How can I help you?"
	ClosingText  = "Thanks, we are waiting for you on time."
	ApologyText  = "Sorry, something went wrong. Please try again."
)

// VoiceOptions control how TwiML documents speak and collect speech.
type VoiceOptions struct {
	Voice         string // e.g. "Polly.Aditi"
	Language      string // e.g. "en-IN"
	GatherTimeout int    // seconds of silence before Twilio gives up
	ProcessPath   string // where Twilio posts the transcript
}

// Responder renders the voice-control documents returned to Twilio.
type Responder struct {
	opts VoiceOptions
}

func NewResponder(opts VoiceOptions) *Responder {
	if opts.GatherTimeout <= 0 {
		opts.GatherTimeout = 5
	}
	if opts.ProcessPath == "" {
		opts.ProcessPath = "/process"
	}
	return &Responder{opts: opts}
}

// Ask speaks text and collects the caller's next utterance.
func (r *Responder) Ask(text string) (string, error) {
	gather := &twiml.VoiceGather{
		Input:         "speech",
		Action:        r.opts.ProcessPath,
		Method:        "POST",
		Timeout:       strconv.Itoa(r.opts.GatherTimeout),
		InnerElements: []twiml.Element{r.say(text)},
	}
	return twiml.Voice([]twiml.Element{gather})
}

// Say speaks text and lets the call end.
func (r *Responder) Say(text string) (string, error) {
	return twiml.Voice([]twiml.Element{r.say(text)})
}

func (r *Responder) Greeting() (string, error) {
	return r.Ask(GreetingText)
}

func (r *Responder) Closing() (string, error) {
	return r.Say(ClosingText)
}

func (r *Responder) Apology() (string, error) {
	return r.Say(ApologyText)
}

func (r *Responder) say(text string) *twiml.VoiceSay {
	return &twiml.VoiceSay{
		Message:  text,
		Voice:    r.opts.Voice,
		Language: r.opts.Language,
	}
}
