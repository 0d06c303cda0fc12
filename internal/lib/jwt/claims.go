package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken возвращается на любую невалидность токена: повреждение,
// неверную подпись или истёкший срок. Причина намеренно не раскрывается.
var ErrInvalidToken = errors.New("invalid token")

// SessionClaims описывает данные сессии, хранящиеся в JWT.
// Идентификатор сериализуется строкой, как и во внешнем API.
type SessionClaims struct {
	UserID               int64 `json:"uid,string"` // Канонический идентификатор пользователя
	jwt.RegisteredClaims       // Стандартные claims (ExpiresAt, IssuedAt и пр.)
}

// GenerateToken создает JWT токен с идентификатором пользователя,
// подписывая его секретным ключом. Время жизни определяется tokenTTL.
func (j *MakerImpl) GenerateToken(userID int64) (string, error) {
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен и проверяет подпись и срок действия.
// Любая причина отказа сворачивается в ErrInvalidToken.
func (j *MakerImpl) ParseToken(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
