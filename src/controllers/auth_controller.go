package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"attendance-tracker/src/models"
	"attendance-tracker/src/services/auth"
	"attendance-tracker/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthService is implemented by auth.Service.
type AuthService interface {
	RequestOTP(ctx context.Context, phone string) (string, error)
	VerifyOTP(ctx context.Context, req models.OTPVerify) (*models.AuthResponse, error)
	RegisterEmail(ctx context.Context, req models.RegisterEmail) (*models.AuthResponse, error)
	LoginEmail(ctx context.Context, req models.LoginEmail) (*models.AuthResponse, error)
}

// TokenRevoker is implemented by utils.TokenBlacklist.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresIn time.Duration) error
}

type AuthController struct {
	svc       AuthService
	blacklist TokenRevoker
}

func NewAuthController(svc AuthService, blacklist TokenRevoker) *AuthController {
	return &AuthController{svc: svc, blacklist: blacklist}
}

// RequestOTP godoc
// @Summary      Issue a one-time code for a phone number
// @Description  No SMS gateway is wired, the code is returned as dev_code.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  models.OTPRequest  true  "Phone"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /auth/request-otp [post]
func (ac *AuthController) RequestOTP(c *fiber.Ctx) error {
	var req models.OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := utils.Validate(req); err != nil {
		return utils.HandleValidationError(c, err)
	}

	code, err := ac.svc.RequestOTP(c.UserContext(), req.Phone)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(fiber.Map{"sent": true, "dev_code": code})
}

// VerifyOTP godoc
// @Summary      Verify a one-time code and sign in
// @Description  A first-time phone number is registered as a new student.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  models.OTPVerify  true  "Phone and code"
// @Success      200  {object}  models.AuthResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /auth/verify-otp [post]
func (ac *AuthController) VerifyOTP(c *fiber.Ctx) error {
	var req models.OTPVerify
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := utils.Validate(req); err != nil {
		return utils.HandleValidationError(c, err)
	}

	resp, err := ac.svc.VerifyOTP(c.UserContext(), req)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(resp)
}

// RegisterEmail godoc
// @Summary      Register with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  models.RegisterEmail  true  "Registration"
// @Success      200  {object}  models.AuthResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /auth/register-email [post]
func (ac *AuthController) RegisterEmail(c *fiber.Ctx) error {
	var req models.RegisterEmail
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := utils.Validate(req); err != nil {
		return utils.HandleValidationError(c, err)
	}

	resp, err := ac.svc.RegisterEmail(c.UserContext(), req)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(resp)
}

// LoginEmail godoc
// @Summary      Sign in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  models.LoginEmail  true  "Credentials"
// @Success      200  {object}  models.AuthResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/login-email [post]
func (ac *AuthController) LoginEmail(c *fiber.Ctx) error {
	var req models.LoginEmail
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := utils.Validate(req); err != nil {
		return utils.HandleValidationError(c, err)
	}

	resp, err := ac.svc.LoginEmail(c.UserContext(), req)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(resp)
}

// Logout godoc
// @Summary      Revoke the current token
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*utils.JWTClaims)
	if !ok || claims == nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	// เก็บ jti ไว้จนกว่า token จะหมดอายุเอง
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := ac.blacklist.Revoke(c.UserContext(), claims.ID, ttl); err != nil {
		log.Printf("❌ revoke token %s: %v", claims.ID, err)
		return utils.HandleError(c, fiber.StatusInternalServerError, "Logout failed")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidOTP):
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid code")
	case errors.Is(err, auth.ErrOTPExpired):
		return utils.HandleError(c, fiber.StatusBadRequest, "Code expired")
	case errors.Is(err, auth.ErrEmailTaken):
		return utils.HandleError(c, fiber.StatusBadRequest, "Email already registered")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return utils.HandleError(c, fiber.StatusInternalServerError, "Internal server error")
}
