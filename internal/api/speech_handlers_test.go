package api_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vytor/kaiwa/internal/speech"
)

func multipartAudio(t *testing.T, field, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="clip"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestTranscribe(t *testing.T) {
	ts := newTestServer(t)
	audio := []byte("OggS-fake")
	ts.speech.On("Transcribe", mock.Anything, audio, "audio/ogg").
		Return(&speech.Transcription{Transcript: "おはようございます", Confidence: 0.88}, nil).Once()

	body, contentType := multipartAudio(t, "audio", "audio/ogg", audio)
	req := httptest.NewRequest(http.MethodPost, "/api/speech/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "おはようございます")
	ts.speech.AssertExpectations(t)
}

func TestTranscribe_MissingAudio(t *testing.T) {
	ts := newTestServer(t)

	body, contentType := multipartAudio(t, "file", "audio/ogg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/speech/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestSynthesize(t *testing.T) {
	ts := newTestServer(t)
	mp3 := []byte{0xff, 0xfb, 0x90, 0x64}
	voice := speech.Voice{Name: "ja-JP-Neural2-C", Gender: "MALE"}
	ts.speech.On("Synthesize", mock.Anything, "いただきます", voice).Return(mp3, nil).Once()

	rec, _ := ts.do(t, http.MethodPost, "/api/speech/synthesize", map[string]any{
		"text":  "いただきます",
		"voice": map[string]any{"name": "ja-JP-Neural2-C", "gender": "MALE"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, mp3, rec.Body.Bytes())
}

func TestSynthesize_DefaultVoice(t *testing.T) {
	ts := newTestServer(t)
	ts.speech.On("Synthesize", mock.Anything, "こんにちは", speech.Voice{}).Return([]byte{0xff}, nil).Once()

	rec, _ := ts.do(t, http.MethodPost, "/api/speech/synthesize", map[string]any{"text": "こんにちは"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ts.speech.AssertExpectations(t)
}

func TestSynthesize_Validation(t *testing.T) {
	ts := newTestServer(t)

	rec, resp := ts.do(t, http.MethodPost, "/api/speech/synthesize", map[string]any{"text": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/speech/synthesize", map[string]any{"text": strings.Repeat("あ", 5001)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.speech.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything, mock.Anything)
}
