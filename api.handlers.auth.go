package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Signup godoc
// @Summary      Register a new user
// @Description  Creates a user account from id, email and password. The email must not exist among seed or registered accounts.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user body User true "user to create"
// @Success      200 {object} APIResponse
// @Failure      400 {object} APIError "Email already registered"
// @Router       /signup [post]
func (api *APIHandler) Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var user User
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	err := DecodeSignupRequestBody(r, &user)
	if err != nil {
		api.logger.Error("failed to sign up user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to sign up the user", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateSignupRequestBody(&user)
	if err != nil {
		api.logger.Error("failed to sign up user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to sign up the user", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = api.authService.SignUp(r.Context(), user)
	if err == ErrDuplicateEmail {
		api.logger.Error("email already registered", zap.String("user.email", user.Email), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "Email already registered", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to sign up user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to sign up the user", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to sign up user", zap.String("user.email", user.Email), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "User created successfully", nil, EmptyData)
	if err = WriteResponse(w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// Login godoc
// @Summary      Obtain an access token
// @Description  Authenticates an email/password pair and mints a fresh bearer token. Each call returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body LoginRequest true "credentials"
// @Success      200 {object} APIResponse{data=LoginResponse}
// @Failure      401 {object} APIError "Invalid credentials"
// @Router       /login [post]
func (api *APIHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var login LoginRequest
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	err := DecodeLoginRequestBody(r, &login)
	if err != nil {
		api.logger.Error("failed to log in user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to log in the user", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateLoginRequestBody(&login)
	if err != nil {
		api.logger.Error("failed to log in user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to log in the user", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	token, err := api.authService.Login(r.Context(), login.Email, login.Password)
	if err == ErrInvalidCredentials {
		api.logger.Error("invalid credentials", zap.String("user.email", login.Email), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusUnauthorized, "Invalid credentials", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to log in user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to log in the user", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to log in user", zap.String("user.email", login.Email), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Login succeeded", nil, LoginResponse{AccessToken: token, TokenType: "bearer"})
	if err = WriteResponse(w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
