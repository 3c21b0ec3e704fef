package speech

import (
	"errors"
	"testing"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestInferEncoding(t *testing.T) {
	tests := []struct {
		contentType string
		want        speechpb.RecognitionConfig_AudioEncoding
	}{
		{"audio/ogg;codecs=opus", speechpb.RecognitionConfig_OGG_OPUS},
		{"audio/flac", speechpb.RecognitionConfig_FLAC},
		{"audio/wav", speechpb.RecognitionConfig_LINEAR16},
		{"audio/x-wav", speechpb.RecognitionConfig_LINEAR16},
		{"audio/L16;linear16", speechpb.RecognitionConfig_LINEAR16},
		{"audio/webm;codecs=opus", speechpb.RecognitionConfig_WEBM_OPUS},
		{"", speechpb.RecognitionConfig_WEBM_OPUS},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferEncoding(tt.contentType), tt.contentType)
	}
}

func TestRecognizeRequest(t *testing.T) {
	req := recognizeRequest([]byte{1, 2, 3}, speechpb.RecognitionConfig_FLAC)

	cfg := req.GetConfig()
	assert.Equal(t, speechpb.RecognitionConfig_FLAC, cfg.GetEncoding())
	assert.Equal(t, int32(48000), cfg.GetSampleRateHertz())
	assert.Equal(t, "ja-JP", cfg.GetLanguageCode())
	assert.True(t, cfg.GetEnableAutomaticPunctuation())
	assert.Equal(t, "latest_long", cfg.GetModel())
	assert.Equal(t, []byte{1, 2, 3}, req.GetAudio().GetContent())
}

func TestParseRecognizeResponse(t *testing.T) {
	resp := &speechpb.RecognizeResponse{Results: []*speechpb.SpeechRecognitionResult{
		{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "一人です", Confidence: 0.9}}},
		{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "お願いします", Confidence: 0.5}}},
		{},
	}}

	got := parseRecognizeResponse(resp)

	assert.Equal(t, "一人です お願いします ", got.Transcript)
	assert.InDelta(t, 0.4667, got.Confidence, 0.001)
}

func TestParseRecognizeResponse_Empty(t *testing.T) {
	assert.Equal(t, Transcription{}, parseRecognizeResponse(&speechpb.RecognizeResponse{}))
	assert.Equal(t, Transcription{}, parseRecognizeResponse(nil))
}

func TestSynthesizeRequest_Defaults(t *testing.T) {
	req := synthesizeRequest("こんにちは", Voice{})

	assert.Equal(t, "こんにちは", req.GetInput().GetText())
	assert.Equal(t, "ja-JP", req.GetVoice().GetLanguageCode())
	assert.Equal(t, "ja-JP-Neural2-B", req.GetVoice().GetName())
	assert.Equal(t, texttospeechpb.SsmlVoiceGender_FEMALE, req.GetVoice().GetSsmlGender())
	assert.Equal(t, texttospeechpb.AudioEncoding_MP3, req.GetAudioConfig().GetAudioEncoding())
	assert.InDelta(t, 0.9, req.GetAudioConfig().GetSpeakingRate(), 1e-9)
}

func TestSynthesizeRequest_Override(t *testing.T) {
	req := synthesizeRequest("はい", Voice{Name: "ja-JP-Neural2-C", Gender: "male"})

	assert.Equal(t, "ja-JP-Neural2-C", req.GetVoice().GetName())
	assert.Equal(t, texttospeechpb.SsmlVoiceGender_MALE, req.GetVoice().GetSsmlGender())
}

func TestMapError(t *testing.T) {
	assert.ErrorIs(t, mapError(status.Error(codes.ResourceExhausted, "quota")), ErrRateLimited)
	assert.ErrorIs(t, mapError(status.Error(codes.Unavailable, "down")), ErrUnavailable)

	plain := errors.New("bad audio")
	assert.Equal(t, plain, mapError(plain))
}

func TestClientOptions(t *testing.T) {
	assert.Nil(t, ClientOptions("", " "))
	require.Len(t, ClientOptions(`{"type":"service_account"}`, "/ignored.json"), 1)
	require.Len(t, ClientOptions("", "/etc/creds.json"), 1)
}
