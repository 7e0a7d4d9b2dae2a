package authservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы с AuthService (учетные записи филиалов)
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента AuthService
func NewClient(baseURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// setAuth добавляет сервисный токен, если он задан в конфигурации
func (c *Client) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// CreateAccount создает учетную запись для входа сотрудников филиала
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (*Account, error) {
	endpoint := fmt.Sprintf("%s/internal/accounts", c.baseURL)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	c.setAuth(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusConflict:
		return nil, ErrAccountExists
	case http.StatusBadRequest:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: bad request: %s", ErrInvalidResponse, string(respBody))
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var account Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &account, nil
}

// UpdatePassword меняет пароль учетной записи филиала
func (c *Client) UpdatePassword(ctx context.Context, email, password string) error {
	endpoint := fmt.Sprintf("%s/internal/accounts/%s/password", c.baseURL, url.PathEscape(email))

	body, err := json.Marshal(UpdatePasswordRequest{Password: password})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	c.setAuth(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrAccountNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// DeleteAccount удаляет учетную запись филиала
func (c *Client) DeleteAccount(ctx context.Context, email string) error {
	endpoint := fmt.Sprintf("%s/internal/accounts/%s", c.baseURL, url.PathEscape(email))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	c.setAuth(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		// Идемпотентное удаление: отсутствующая запись не считается ошибкой
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// CreateAccountWithGracefulDegradation создает учетную запись с graceful degradation
// При недоступности AuthService возвращает ErrServiceDegraded: филиал сохраняется,
// а учетную запись можно создать позже повторным сохранением
func (c *Client) CreateAccountWithGracefulDegradation(ctx context.Context, req CreateAccountRequest) (*Account, error) {
	c.log.Info("Creating branch account for branch_id=%d, email=%s", req.BranchID, req.Email)

	account, err := c.CreateAccount(ctx, req)
	if err != nil {
		// Конфликт email — бизнес-ошибка, пробрасываем её дальше
		if err == ErrAccountExists {
			c.log.Info("Branch account already exists for email=%s", req.Email)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("AuthService unavailable, applying graceful degradation for branch_id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: branch_id=%d, error=%v", ErrServiceDegraded, req.BranchID, err)
	}

	c.log.Info("Successfully created branch account id=%s for branch_id=%d", account.ID, req.BranchID)
	return account, nil
}
