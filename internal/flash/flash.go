// Package flash carries one-shot user messages across a redirect in a
// cookie signed with the application secret.
package flash

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "clinic_flash"
	maxAge     = 5 * time.Minute

	Success = "success"
	Danger  = "danger"
	Warning = "warning"
)

type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

type claims struct {
	Messages []Message `json:"messages"`
	jwt.RegisteredClaims
}

type Store struct {
	secret []byte
}

func NewStore(secret string) *Store {
	return &Store{secret: []byte(secret)}
}

// Add queues a message for the next rendered page.
func (s *Store) Add(c *gin.Context, category, text string) {
	msgs := s.read(c)
	msgs = append(msgs, Message{Category: category, Text: text})

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(maxAge)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return
	}

	// later Add calls in the same request must see earlier ones
	c.Set(CookieName, msgs)
	s.setCookie(c, signed, int(maxAge.Seconds()))
}

// Pop returns the pending messages and clears them.
func (s *Store) Pop(c *gin.Context) []Message {
	msgs := s.read(c)
	if len(msgs) > 0 {
		c.Set(CookieName, []Message(nil))
		s.setCookie(c, "", -1)
	}
	return msgs
}

func (s *Store) read(c *gin.Context) []Message {
	if v, ok := c.Get(CookieName); ok {
		msgs, _ := v.([]Message)
		return msgs
	}

	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil
	}

	var cl claims
	_, err = jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil
	}
	return cl.Messages
}

func (s *Store) setCookie(c *gin.Context, value string, age int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, age, "/", "", false, true)
}
