// Package pass issues and verifies visitor pass tokens. An approved visit
// gets a signed pass the visitor presents at the kiosk; the kiosk check-in
// verifies it offline against the shared signing key.
package pass

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
)

const issuer = "foyer"

// Claims are the pass token claims.
type Claims struct {
	VisitID   string `json:"visit_id"`
	VisitorID string `json:"visitor_id"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies pass tokens with an HMAC key.
type Issuer struct {
	signingKey []byte
	validity   time.Duration
}

// NewIssuer constructs a pass issuer. validity bounds how long an issued
// pass stays usable.
func NewIssuer(signingKey string, validity time.Duration) *Issuer {
	return &Issuer{signingKey: []byte(signingKey), validity: validity}
}

// Issue signs a pass for the visit.
func (i *Issuer) Issue(visitID id.VisitID, visitorID id.VisitorID, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		VisitID:   visitID.String(),
		VisitorID: visitorID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(i.signingKey)
}

// Verify parses a presented pass and returns the visit it belongs to.
func (i *Issuer) Verify(tokenString string) (id.VisitID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return i.signingKey, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return id.VisitID{}, dErrors.New(dErrors.CodeUnauthorized, "pass has expired")
		}
		return id.VisitID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid pass")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return id.VisitID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid pass")
	}

	visitID, err := id.ParseVisitID(claims.VisitID)
	if err != nil {
		return id.VisitID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid pass")
	}
	return visitID, nil
}
