// Package account registra usuários e valida logins.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"bot-precos/internal/metrics"
)

var (
	// ErrEmailInvalid indica um e-mail em formato inválido
	ErrEmailInvalid = errors.New("o e-mail não tem um formato válido")

	// ErrAlreadyRegistered indica que o e-mail já está cadastrado
	ErrAlreadyRegistered = errors.New("o e-mail já está cadastrado")

	// ErrNotFound indica que não há conta com o e-mail
	ErrNotFound = errors.New("usuário não existe")

	// ErrWrongPassword indica senha incorreta
	ErrWrongPassword = errors.New("senha incorreta")
)

// Account é um usuário cadastrado
type Account struct {
	ID           string
	Email        string
	PasswordHash string
}

func (a Account) String() string {
	return fmt.Sprintf("<User %s>", a.Email)
}

// Store é o armazenamento persistente de contas
type Store interface {
	// FindByEmail retorna nil, nil quando não há conta com o e-mail
	FindByEmail(ctx context.Context, email string) (*Account, error)
	// Insert retorna ErrAlreadyRegistered se o e-mail já existir
	Insert(ctx context.Context, a *Account) error
}

// Hasher gera e confere hashes de senha
type Hasher interface {
	Hash(password string) (string, error)
	Verify(candidate, stored string) bool
}

// EmailValidator valida o formato de um e-mail
type EmailValidator interface {
	Valid(email string) bool
}

// Manager executa registro e login
type Manager struct {
	store     Store
	hasher    Hasher
	validator EmailValidator
	logger    *slog.Logger
	metrics   *metrics.Metrics
	newID     func() string
}

// ManagerOption configura o Manager
type ManagerOption func(*Manager)

// WithLogger define o logger
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// WithMetrics define as métricas
func WithMetrics(mt *metrics.Metrics) ManagerOption {
	return func(m *Manager) { m.metrics = mt }
}

// WithIDGenerator substitui o gerador de ids
func WithIDGenerator(gen func() string) ManagerOption {
	return func(m *Manager) { m.newID = gen }
}

// NewManager cria um novo Manager com as dependências informadas
func NewManager(store Store, hasher Hasher, validator EmailValidator, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:     store,
		hasher:    hasher,
		validator: validator,
		logger:    slog.Default(),
		newID:     NewID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewID gera um id aleatório de 32 caracteres hexadecimais
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Register cadastra um novo usuário. password já chega com o hash do cliente.
func (m *Manager) Register(ctx context.Context, email, password string) (err error) {
	defer func() { m.record("register", err) }()

	email = strings.TrimSpace(email)
	if !m.validator.Valid(email) {
		return ErrEmailInvalid
	}

	existing, err := m.store.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("erro ao buscar usuário: %w", err)
	}
	if existing != nil {
		return ErrAlreadyRegistered
	}

	hash, err := m.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}

	a := &Account{ID: m.newID(), Email: email, PasswordHash: hash}
	if err := m.store.Insert(ctx, a); err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("erro ao salvar usuário: %w", err)
	}

	m.logger.Info("usuário registrado", slog.String("id", a.ID))
	return nil
}

// Login confere se o e-mail existe e se a senha corresponde ao hash salvo
func (m *Manager) Login(ctx context.Context, email, password string) (err error) {
	defer func() { m.record("login", err) }()

	a, err := m.store.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return fmt.Errorf("erro ao buscar usuário: %w", err)
	}
	if a == nil {
		return ErrNotFound
	}
	if !m.hasher.Verify(password, a.PasswordHash) {
		return ErrWrongPassword
	}
	return nil
}

func (m *Manager) record(operation string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrEmailInvalid):
		result = "email_invalid"
	case errors.Is(err, ErrAlreadyRegistered):
		result = "already_registered"
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case errors.Is(err, ErrWrongPassword):
		result = "wrong_password"
	default:
		result = "error"
		m.logger.Error("erro na operação de conta", slog.String("operation", operation), slog.Any("error", err))
	}
	m.metrics.RecordAccount(operation, result)
}
