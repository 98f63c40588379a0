package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/websocket/interfaces"
	"github.com/gorilla/websocket"

	"github.com/voxmemo/voxmemo-core/core/speechrecognition"
)

const defaultLanguage = "en-US"

// Start opens a listen stream and delivers recognition callbacks until the
// stream terminates. A successful dial invokes the ready callback before any
// recognition callback fires.
func (c *RecognitionClient) Start(ctx context.Context, opts ...speechrecognition.RecognitionOption) error {
	options := &speechrecognition.RecognitionOptions{Language: defaultLanguage}
	for _, opt := range opts {
		opt(options)
	}

	conn, err := connectWebsocket(connectionOptions{
		language: options.Language,

		detectSpeechStart: options.BeginningOfSpeechCallback != nil,
		interimResults:    options.PartialResultCallback != nil,
	})
	if err != nil {
		return fmt.Errorf("failed to open websocket: %w", err)
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
	c.cancelled.Store(false)
	c.terminalDelivered.Store(false)
	c.accumulatedTranscript = ""
	c.unendedSegment = false

	if options.ReadyCallback != nil {
		options.ReadyCallback()
	}

	go c.readAndProcessMessages(ctx, conn, *options)

	return nil
}

// Stop asks the engine to flush and close the stream. A trailing final
// result, or a no-match error when nothing was recognized, is delivered
// through the callbacks before the stream ends.
func (c *RecognitionClient) Stop() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return nil
	}
	if err := c.conn.WriteJSON(struct {
		Type string `json:"type"`
	}{Type: string(api.TypeCloseStreamResponse)}); err != nil {
		return fmt.Errorf("failed to close deepgram stream: %w", err)
	}
	return nil
}

// Cancel tears the stream down without flushing; no further callbacks are
// delivered.
func (c *RecognitionClient) Cancel() error {
	c.cancelled.Store(true)

	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	if err != nil {
		return fmt.Errorf("failed to close deepgram connection: %w", err)
	}
	return nil
}

// SendAudio forwards a raw audio chunk to the engine.
func (c *RecognitionClient) SendAudio(audio []byte) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("no open deepgram connection")
	}
	if err := c.conn.WriteMessage(websocket.BinaryMessage, audio); err != nil {
		return fmt.Errorf("failed to write to deepgram client: %w", err)
	}
	return nil
}

type connectionOptions struct {
	language string

	detectSpeechStart bool
	interimResults    bool
}

func connectWebsocket(options connectionOptions) (*websocket.Conn, error) {
	apiKey, ok := os.LookupEnv("DEEPGRAM_API_KEY")
	if !ok {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	listenUrl, _ := url.Parse("wss://api.deepgram.com/v1/listen")
	queryParams := listenUrl.Query()
	queryParams.Set("channels", "1")
	queryParams.Set("model", "nova-3")
	queryParams.Set("language", options.language)
	queryParams.Set("smart_format", "true")
	queryParams.Set("utterance_end_ms", "1000")
	queryParams.Set("endpointing", "300")
	if options.interimResults {
		queryParams.Set("interim_results", "true")
	}
	if options.detectSpeechStart {
		queryParams.Set("vad_events", "true")
	}

	listenUrl.RawQuery = queryParams.Encode()
	conn, _, err := websocket.DefaultDialer.Dial(listenUrl.String(),
		http.Header{"Authorization": {"Token " + apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, err
}

func (c *RecognitionClient) readAndProcessMessages(ctx context.Context, conn *websocket.Conn, options speechrecognition.RecognitionOptions) {
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			c.connMu.Lock()
			if c.conn == conn {
				c.conn = nil
			}
			c.connMu.Unlock()
			conn.Close()

			c.finishStream(err, options)
			return
		}
		if msgType != websocket.BinaryMessage {
			c.processMessage(ctx, msg, options)
		}
	}
}

func (c *RecognitionClient) processMessage(_ context.Context, msg []byte, options speechrecognition.RecognitionOptions) {
	var parsedMsg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &parsedMsg); err != nil {
		log.Println("Failed to unmarshal deepgram message", "error", err)
		return
	}

	switch api.TypeResponse(parsedMsg.Type) {
	case api.TypeMessageResponse:
		var msgResp api.MessageResponse
		if err := json.Unmarshal(msg, &msgResp); err != nil {
			log.Println("Failed to unmarshal deepgram message", err)
			return
		}
		if len(msgResp.Channel.Alternatives) == 0 {
			return
		}
		transcript := strings.TrimSpace(msgResp.Channel.Alternatives[0].Transcript)

		if msgResp.IsFinal {
			if len(transcript) > 0 {
				if c.accumulatedTranscript != "" {
					c.accumulatedTranscript += " "
				}
				c.accumulatedTranscript += transcript
			}
			if msgResp.SpeechFinal {
				c.onUtteranceEnded(options)
			}
			return
		}
		if len(transcript) > 0 && options.PartialResultCallback != nil {
			options.PartialResultCallback(transcript)
		}

	case api.TypeUtteranceEndResponse:
		if c.unendedSegment {
			c.onUtteranceEnded(options)
		}

	case api.TypeSpeechStartedResponse:
		c.unendedSegment = true
		if options.BeginningOfSpeechCallback != nil {
			options.BeginningOfSpeechCallback()
		}

	case api.TypeResponse(api.TypeErrorResponse):
		var msgResp struct {
			Description string `json:"description"`
			Message     string `json:"message"`
		}
		if err := json.Unmarshal(msg, &msgResp); err != nil {
			log.Println("Failed to unmarshal deepgram error", err)
			return
		}
		description := msgResp.Description
		if description == "" {
			description = msgResp.Message
		}
		c.deliverError(classifyErrorDescription(description), options)
	}
}

func (c *RecognitionClient) onUtteranceEnded(options speechrecognition.RecognitionOptions) {
	c.unendedSegment = false
	fullTranscript := strings.TrimSpace(c.accumulatedTranscript)
	c.accumulatedTranscript = ""
	if len(fullTranscript) > 0 && options.FinalResultCallback != nil {
		c.terminalDelivered.Store(true)
		options.FinalResultCallback(fullTranscript)
	}
	if options.EndOfSpeechCallback != nil {
		options.EndOfSpeechCallback()
	}
}

// finishStream runs once the read loop exits. A stream that ends without
// having delivered a final result or an error reports no-match, so a silent
// stop behaves like engines with native no-match reporting.
func (c *RecognitionClient) finishStream(readErr error, options speechrecognition.RecognitionOptions) {
	if c.cancelled.Load() {
		return
	}

	if websocket.IsCloseError(readErr, websocket.CloseNormalClosure) {
		if c.unendedSegment || strings.TrimSpace(c.accumulatedTranscript) != "" {
			c.onUtteranceEnded(options)
		}
		if !c.terminalDelivered.Load() {
			c.deliverError(speechrecognition.ErrNoMatch, options)
		}
		return
	}

	log.Println("Failed to read deepgram websocket message", "error", readErr)
	c.deliverError(classifyTransportError(readErr), options)
}

func (c *RecognitionClient) deliverError(code speechrecognition.ErrorCode, options speechrecognition.RecognitionOptions) {
	if c.terminalDelivered.Swap(true) {
		return
	}
	if options.ErrorCallback != nil {
		options.ErrorCallback(code)
	}
}

func classifyErrorDescription(description string) speechrecognition.ErrorCode {
	lowered := strings.ToLower(description)
	switch {
	case strings.Contains(lowered, "auth"), strings.Contains(lowered, "401"), strings.Contains(lowered, "403"):
		return speechrecognition.ErrPermission
	case strings.Contains(lowered, "429"), strings.Contains(lowered, "busy"), strings.Contains(lowered, "rate"):
		return speechrecognition.ErrBusy
	case strings.Contains(lowered, "timeout"):
		return speechrecognition.ErrNetworkTimeout
	default:
		return speechrecognition.ErrOther
	}
}

func classifyTransportError(err error) speechrecognition.ErrorCode {
	if err == nil {
		return speechrecognition.ErrOther
	}
	if strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return speechrecognition.ErrNetworkTimeout
	}
	return speechrecognition.ErrNetwork
}
