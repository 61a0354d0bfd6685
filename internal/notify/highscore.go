package notify

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trivia-game-service/internal/domain"
)

const highscoreDataNS = "http://big.tuwien.ac.at/we/highscore/data"

// HighscoreClient reports finished games to the external highscore web
// service. The service speaks a small SOAP dialect: one HighScoreRequest with
// the caller's user key and every player marked winner or loser, answered
// with the UUID of the stored highscore entry.
type HighscoreClient struct {
	endpoint   string
	userKey    string
	httpClient *http.Client
}

func NewHighscoreClient(endpoint, userKey string) *HighscoreClient {
	return &HighscoreClient{
		endpoint:   endpoint,
		userKey:    userKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type soapEnvelope struct {
	XMLName xml.Name `xml:"soapenv:Envelope"`
	SoapNS  string   `xml:"xmlns:soapenv,attr"`
	DataNS  string   `xml:"xmlns:data,attr"`
	Body    soapBody `xml:"soapenv:Body"`
}

type soapBody struct {
	Request highScoreRequest `xml:"data:HighScoreRequest"`
}

type highScoreRequest struct {
	UserKey string      `xml:"data:UserKey"`
	Quiz    quizElement `xml:"quiz"`
}

type quizElement struct {
	Users []userElement `xml:"users>user"`
}

type userElement struct {
	Gender    string `xml:"gender,attr"`
	Name      string `xml:"name,attr"` // "winner" or "loser"
	Password  string `xml:"password"`
	FirstName string `xml:"firstname"`
	LastName  string `xml:"lastname"`
	BirthDate string `xml:"birthdate"`
}

type publishResponse struct {
	Body struct {
		Result struct {
			Value string `xml:",chardata"`
		} `xml:",any"`
	} `xml:"Body"`
}

// Publish sends the game result and returns the receipt UUID minted by the
// highscore service.
func (c *HighscoreClient) Publish(ctx context.Context, players []domain.Player, winnerID string) (string, error) {
	envelope := soapEnvelope{
		SoapNS: "http://schemas.xmlsoap.org/soap/envelope/",
		DataNS: highscoreDataNS,
		Body: soapBody{
			Request: highScoreRequest{
				UserKey: c.userKey,
				Quiz:    quizElement{Users: make([]userElement, 0, len(players))},
			},
		},
	}
	for _, p := range players {
		user := userElement{
			Gender:    p.Gender,
			Name:      "loser",
			FirstName: p.FirstName,
			LastName:  p.LastName,
		}
		if p.ID == winnerID {
			user.Name = "winner"
		}
		if p.BirthDate != nil {
			user.BirthDate = p.BirthDate.Format("2006-01-02")
		}
		envelope.Body.Request.Quiz.Users = append(envelope.Body.Request.Quiz.Users, user)
	}

	payload, err := xml.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("marshal highscore request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(append([]byte(xml.Header), payload...)))
	if err != nil {
		return "", fmt.Errorf("build highscore request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post highscore: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("highscore service returned %s", resp.Status)
	}

	var parsed publishResponse
	if err := xml.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode highscore response: %w", err)
	}
	uuid := strings.TrimSpace(parsed.Body.Result.Value)
	if uuid == "" {
		return "", fmt.Errorf("highscore response carried no receipt id")
	}
	return uuid, nil
}
