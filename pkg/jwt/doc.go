// Package jwt signs and verifies HMAC-SHA256 JSON Web Tokens with
// github.com/golang-jwt/jwt/v5.
//
// One Service covers one token kind. An API with access and refresh tokens
// creates two services with different secrets and lifetimes:
//
//	access, _ := jwt.New(cfg.AccessSecret, jwt.WithTTL(15*time.Minute), jwt.WithNotBefore(3*time.Second))
//	refresh, _ := jwt.New(cfg.RefreshSecret, jwt.WithTTL(30*24*time.Hour))
//
// Claim types embed StandardClaims; Generate fills in the registered
// claims (jti, iat, nbf, exp and iss) before signing:
//
//	type Claims struct {
//	    jwt.StandardClaims
//	    Email string `json:"email"`
//	}
//
//	token, err := access.Generate(&Claims{Email: "admin@admin.com"})
//
//	var parsed Claims
//	err = access.Parse(token, &parsed)
package jwt
