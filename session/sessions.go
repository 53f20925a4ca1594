package session

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"cloyt/bizerror"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

const TokenExpiration = 24 * time.Hour

var TokenCache = cache.New(TokenExpiration, 1*time.Minute)

const KeySecToken = "sec_token"

type Identity struct {
	Name string `json:"name"`
}

type Session struct {
	Token       string    `json:"token"`
	Identity    Identity  `json:"identity"`
	SigningTime time.Time `json:"signingTime"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AdminAccount is the single administrator account of the CRUD surface,
// supplied by configuration rather than a user table.
type AdminAccount struct {
	Name   string
	Secret string
}

func ParseAdminAccountFromEnv() (*AdminAccount, error) {
	name := os.Getenv("ADMIN_NAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if name == "" || password == "" {
		return nil, errors.New("environment variables ADMIN_NAME and ADMIN_PASSWORD must be set")
	}
	return &AdminAccount{Name: name, Secret: HashSha256(password)}, nil
}

func HashSha256(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (a *AdminAccount) Matches(name, password string) bool {
	nameMatch := subtle.ConstantTimeCompare([]byte(a.Name), []byte(name)) == 1
	secretMatch := subtle.ConstantTimeCompare([]byte(a.Secret), []byte(HashSha256(password))) == 1
	return nameMatch && secretMatch
}

// SimpleAuthFilter guards the admin CRUD endpoints with the cookie token.
func SimpleAuthFilter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(KeySecToken)
		if err != nil {
			panic(bizerror.ErrUnauthenticated)
		}
		value, found := TokenCache.Get(token)
		if !found {
			panic(bizerror.ErrUnauthenticated)
		}
		if _, ok := value.(*Session); !ok {
			panic(bizerror.ErrUnauthenticated)
		}
		ctx.Next()
	}
}
