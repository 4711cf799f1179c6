package pose

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"sync"
	"time"

	"VirtualFitting/internal/entity"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// websocketDetector sends JPEG frames to an external pose model service and
// reads back its landmark list. The connection is opened lazily and reopened
// after any I/O failure.
type websocketDetector struct {
	url          string
	conn         *websocket.Conn
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	done         chan struct{}
}

func NewWebsocketDetector(url string) LandmarkDetector {
	return &websocketDetector{
		url:          url,
		pingInterval: 30 * time.Second,
		readTimeout:  15 * time.Second,
		writeTimeout: 5 * time.Second,
		done:         make(chan struct{}),
	}
}

func (d *websocketDetector) Detect(ctx context.Context, img image.Image) (entity.Landmarks, error) {
	frame, err := encodeFrame(img)
	if err != nil {
		return nil, err
	}

	message, err := d.roundTrip(ctx, frame)
	if err != nil {
		return nil, err
	}

	var result entity.PoseDetectionResult
	if err := json.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling pose response: %w", err)
	}

	logrus.Debugf("Pose Detection Result: landmarks=%d message=%s", len(result.Landmarks), result.Message)

	if len(result.Landmarks) == 0 {
		return nil, ErrNoBodyDetected
	}

	return FromList(result.Landmarks), nil
}

func (d *websocketDetector) roundTrip(ctx context.Context, frame []byte) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		if err := d.connect(); err != nil {
			return nil, fmt.Errorf("cannot connect to pose detection service: %w", err)
		}
	}
	conn := d.conn

	writeDeadline := time.Now().Add(d.writeTimeout)
	readDeadline := time.Now().Add(d.readTimeout)
	if deadline, ok := ctx.Deadline(); ok {
		if deadline.Before(writeDeadline) {
			writeDeadline = deadline
		}
		if deadline.Before(readDeadline) {
			readDeadline = deadline
		}
	}

	conn.SetWriteDeadline(writeDeadline)
	logrus.Debugf("Sending pose frame of size: %d bytes", len(frame))
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		d.drop()
		return nil, fmt.Errorf("error sending pose frame: %w", err)
	}

	conn.SetReadDeadline(readDeadline)
	_, message, err := conn.ReadMessage()
	if err != nil {
		d.drop()
		return nil, fmt.Errorf("error reading pose message: %w", err)
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	return message, nil
}

// connect must be called with d.mu held.
func (d *websocketDetector) connect() error {
	if d.url == "" {
		return fmt.Errorf("URL for pose detection not configured")
	}

	logrus.Infof("Connecting to pose detection service at %s", d.url)

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(d.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", d.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(d.writeTimeout))
		if err != nil {
			logrus.Warnf("Error sending pong: %v", err)
		}
		return nil
	})

	d.conn = conn
	go d.keepAlive(conn)

	return nil
}

// drop must be called with d.mu held.
func (d *websocketDetector) drop() {
	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
}

func (d *websocketDetector) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(d.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case <-ticker.C:
		}

		d.mu.Lock()
		if d.conn != conn {
			d.mu.Unlock()
			return
		}

		if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(d.writeTimeout)); err != nil {
			logrus.Warnf("Pose detection ping failed: %v", err)
			d.drop()
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
	}
}

func (d *websocketDetector) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	select {
	case <-d.done:
	default:
		close(d.done)
	}
	d.drop()
}
