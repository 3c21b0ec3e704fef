// Package speech converts learner audio to Japanese text and tutor replies
// back to audio using Google Cloud Speech-to-Text and Text-to-Speech.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	stt "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	tts "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vytor/kaiwa/internal/logger"
)

const (
	LanguageCode     = "ja-JP"
	SampleRateHertz  = 48000
	RecognitionModel = "latest_long"
	DefaultVoice     = "ja-JP-Neural2-B"
	SpeakingRate     = 0.9
)

var (
	// ErrRateLimited is returned when the cloud quota is exhausted.
	ErrRateLimited = errors.New("speech quota exhausted")
	// ErrUnavailable is returned when the cloud service cannot be reached.
	ErrUnavailable = errors.New("speech service unavailable")
)

type Transcription struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// Voice overrides the synthesis voice. Gender is MALE, FEMALE or NEUTRAL.
type Voice struct {
	Name   string `json:"name,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// Client transcribes and synthesizes Japanese speech.
type Client interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (*Transcription, error)
	Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error)
	Close() error
}

type googleClient struct {
	stt *stt.Client
	tts *tts.Client
}

// NewGoogleClient dials both cloud services with opts.
func NewGoogleClient(ctx context.Context, opts ...option.ClientOption) (Client, error) {
	log := logger.FromContext(ctx).WithPrefix("speech")

	sc, err := stt.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("speech-to-text client: %w", err)
	}
	tc, err := tts.NewClient(ctx, opts...)
	if err != nil {
		_ = sc.Close()
		return nil, fmt.Errorf("text-to-speech client: %w", err)
	}
	log.Info("speech clients ready")
	return &googleClient{stt: sc, tts: tc}, nil
}

func (c *googleClient) Transcribe(ctx context.Context, audio []byte, contentType string) (*Transcription, error) {
	log := logger.FromContext(ctx).WithPrefix("speech")
	enc := InferEncoding(contentType)
	log.Debug("transcribing %d bytes: content_type=%s, encoding=%s", len(audio), contentType, enc)

	resp, err := c.stt.Recognize(ctx, recognizeRequest(audio, enc))
	if err != nil {
		log.Error("recognize failed: %v", err)
		return nil, mapError(err)
	}
	out := parseRecognizeResponse(resp)
	log.Debug("transcribed: chars=%d, confidence=%.2f", len([]rune(out.Transcript)), out.Confidence)
	return &out, nil
}

func (c *googleClient) Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("speech")
	log.Debug("synthesizing %d chars: voice=%s", len([]rune(text)), voice.Name)

	resp, err := c.tts.SynthesizeSpeech(ctx, synthesizeRequest(text, voice))
	if err != nil {
		log.Error("synthesize failed: %v", err)
		return nil, mapError(err)
	}
	if len(resp.GetAudioContent()) == 0 {
		return nil, fmt.Errorf("no audio content in response")
	}
	return resp.GetAudioContent(), nil
}

func (c *googleClient) Close() error {
	return errors.Join(c.stt.Close(), c.tts.Close())
}

// InferEncoding maps an upload content type to a recognition encoding.
// Browsers record WebM/Opus unless told otherwise.
func InferEncoding(contentType string) speechpb.RecognitionConfig_AudioEncoding {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "ogg"):
		return speechpb.RecognitionConfig_OGG_OPUS
	case strings.Contains(ct, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(ct, "wav"), strings.Contains(ct, "linear16"):
		return speechpb.RecognitionConfig_LINEAR16
	default:
		return speechpb.RecognitionConfig_WEBM_OPUS
	}
}

func recognizeRequest(audio []byte, enc speechpb.RecognitionConfig_AudioEncoding) *speechpb.RecognizeRequest {
	return &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   enc,
			SampleRateHertz:            SampleRateHertz,
			LanguageCode:               LanguageCode,
			EnableAutomaticPunctuation: true,
			Model:                      RecognitionModel,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}
}

// parseRecognizeResponse joins the top alternative of every result and
// averages their confidence. Results without alternatives count as empty.
func parseRecognizeResponse(resp *speechpb.RecognizeResponse) Transcription {
	results := resp.GetResults()
	if len(results) == 0 {
		return Transcription{}
	}

	parts := make([]string, 0, len(results))
	var sum float64
	for _, r := range results {
		var text string
		var conf float32
		if alts := r.GetAlternatives(); len(alts) > 0 {
			text = alts[0].GetTranscript()
			conf = alts[0].GetConfidence()
		}
		parts = append(parts, text)
		sum += float64(conf)
	}
	return Transcription{
		Transcript: strings.Join(parts, " "),
		Confidence: sum / float64(len(results)),
	}
}

func synthesizeRequest(text string, voice Voice) *texttospeechpb.SynthesizeSpeechRequest {
	name := voice.Name
	if name == "" {
		name = DefaultVoice
	}
	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: LanguageCode,
			Name:         name,
			SsmlGender:   ssmlGender(voice.Gender),
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  SpeakingRate,
			Pitch:         0,
		},
	}
}

func ssmlGender(g string) texttospeechpb.SsmlVoiceGender {
	switch strings.ToUpper(g) {
	case "MALE":
		return texttospeechpb.SsmlVoiceGender_MALE
	case "NEUTRAL":
		return texttospeechpb.SsmlVoiceGender_NEUTRAL
	default:
		return texttospeechpb.SsmlVoiceGender_FEMALE
	}
}

func mapError(err error) error {
	switch status.Code(err) {
	case codes.ResourceExhausted:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
