package token

import (
	"fmt"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
)

// Outcome, Verify sonucunun ayırt edicisi.
// Sıfır değer Invalid'dir; doldurulmamış bir Verification asla geçerli sayılmaz.
type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeValid
	OutcomeExpired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// Verification, Verify'ın döndüğü tagged union.
// Claims sadece Outcome == OutcomeValid iken doludur.
type Verification struct {
	Outcome Outcome
	Claims  *models.SessionClaims
}

// Rejection, AuthorizeRequest'in ret sebebi. RejectNone başarı demektir.
type Rejection int

const (
	RejectNone Rejection = iota
	RejectTokenMissing
	RejectTokenExpired
	RejectTokenInvalid
)

// Ret sebeplerinin error karşılıkları. Hepsi pkg.ErrUnauthorized'ı sarar,
// böylece pkg.Error onları 401'e çevirir.
var (
	ErrTokenMissing = fmt.Errorf("%w: token missing", pkg.ErrUnauthorized)
	ErrTokenExpired = fmt.Errorf("%w: token expired", pkg.ErrUnauthorized)
	ErrTokenInvalid = fmt.Errorf("%w: token invalid", pkg.ErrUnauthorized)
)

// String, metrik etiketi olarak da kullanılır.
func (r Rejection) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectTokenMissing:
		return "missing"
	case RejectTokenExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// Message, client'a dönen ret mesajı: "token missing", "token expired", "token invalid".
func (r Rejection) Message() string {
	if r == RejectNone {
		return ""
	}
	return "token " + r.String()
}

// Err, reddi HTTP katmanına taşınacak error'a çevirir. RejectNone için nil.
func (r Rejection) Err() error {
	switch r {
	case RejectNone:
		return nil
	case RejectTokenMissing:
		return ErrTokenMissing
	case RejectTokenExpired:
		return ErrTokenExpired
	default:
		return ErrTokenInvalid
	}
}

// Authorization, AuthorizeRequest'in sonucu.
type Authorization struct {
	Claims    *models.SessionClaims
	Rejection Rejection
}

// OK, request'in kimliği doğrulandıysa true döner.
func (a Authorization) OK() bool {
	return a.Rejection == RejectNone && a.Claims != nil
}
