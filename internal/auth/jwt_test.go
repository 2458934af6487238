package auth

import (
	"testing"

	"poa-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	secret := "clave-de-prueba-suficientemente-larga-123456"
	usuario := &models.Usuario{
		ID:    42,
		Email: "directora@uni.edu.ec",
		Rol:   models.RolDirector,
	}

	firmado, err := GenerateToken(secret, usuario)
	if err != nil {
		t.Fatal(err)
	}

	token, err := jwt.ParseWithClaims(firmado, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token inválido: %v", err)
	}
	claims := token.Claims.(*JWTCustomClaims)
	if claims.UsuarioID != 42 || claims.Email != "directora@uni.edu.ec" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Rol != models.RolDirector {
		t.Errorf("rol = %q", claims.Rol)
	}

	// Otra clave no debe validar
	if _, err := jwt.ParseWithClaims(firmado, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("otra-clave-igual-de-larga-abcdefghijklmn"), nil
	}); err == nil {
		t.Error("un secreto distinto debe rechazar la firma")
	}
}
