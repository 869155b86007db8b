package middleware

import (
	"strings"

	"github.com/arzan03/CampDirectory/internal/models"
	"github.com/arzan03/CampDirectory/internal/web"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TokenCookie is the cookie the login flow sets and Protect accepts as an
// alternative to the Authorization header.
const TokenCookie = "token"

const localsUser = "user"

// Auth authenticates requests and enforces role allow-lists.
type Auth struct {
	users  *mongo.Collection
	secret []byte
}

func NewAuth(database *mongo.Database, secret string) *Auth {
	return &Auth{
		users:  database.Collection("users"),
		secret: []byte(secret),
	}
}

// Protect validates the JWT from the bearer header or the token cookie,
// loads the user fresh from the database and stores it in the request
// context for downstream handlers.
func (a *Auth) Protect(c *fiber.Ctx) error {
	tokenString := bearerToken(c.Get(fiber.HeaderAuthorization))
	if tokenString == "" {
		tokenString = c.Cookies(TokenCookie)
	}
	if tokenString == "" {
		return web.Unauthorized("Not authorized to access this route")
	}

	userID, err := a.VerifyToken(tokenString)
	if err != nil {
		return web.Unauthorized("Not authorized to access this route")
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return web.Unauthorized("Not authorized to access this route")
	}

	var user models.User
	if err := a.users.FindOne(c.Context(), bson.M{"_id": objID}).Decode(&user); err != nil {
		return web.Unauthorized("Not authorized to access this route")
	}

	c.Locals(localsUser, &user)
	return c.Next()
}

// RequireRoles returns a handler that rejects callers whose role is not in
// the allow-list. Must run after Protect.
func (a *Auth) RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return web.Unauthorized("Not authorized to access this route")
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return web.Forbidden("User role '%s' is not authorized to access this route", user.Role)
	}
}

// VerifyToken checks the token signature and expiry and returns the bound
// user id.
func (a *Auth) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", web.Unauthorized("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", web.Unauthorized("Invalid token claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", web.Unauthorized("Invalid token payload")
	}
	return userID, nil
}

// CurrentUser returns the authenticated user attached by Protect, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUser).(*models.User)
	return user
}

// SetCurrentUser is used by tests and internal wiring to inject an identity.
func SetCurrentUser(c *fiber.Ctx, user *models.User) {
	c.Locals(localsUser, user)
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
