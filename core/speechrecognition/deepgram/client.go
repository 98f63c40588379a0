// Package deepgram adapts the Deepgram live-listen websocket API to the
// speechrecognition engine boundary. The adapter supports a single in-flight
// recognition at a time.
package deepgram

import (
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

type RecognitionClient struct {
	conn   *websocket.Conn
	connMu sync.Mutex

	// cancelled marks a teardown requested through Cancel; the read loop
	// suppresses callbacks for a cancelled stream.
	cancelled atomic.Bool
	// terminalDelivered records that a final result or an error already
	// reached the callbacks for the current stream.
	terminalDelivered atomic.Bool

	accumulatedTranscript string
	unendedSegment        bool
}

func NewRecognitionClient() *RecognitionClient {
	return &RecognitionClient{}
}
