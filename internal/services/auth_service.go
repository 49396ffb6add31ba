package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/nibble/internal/models"
	"github.com/terraincognita07/nibble/internal/security"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSessionLoadFailed = errors.New("load session failed")
	ErrSessionSaveFailed = errors.New("save session failed")
	ErrPINHashFailed     = errors.New("hash pin failed")
)

// errSessionUnchanged aborts a session update without writing.
var errSessionUnchanged = errors.New("session unchanged")

type SessionRepository interface {
	Load() (models.SessionRecord, bool, error)
	Update(mutate func(record *models.SessionRecord) error) (models.SessionRecord, error)
}

type AuthService struct {
	sessions   SessionRepository
	hashCost   int
	secretFunc func() (string, error)
}

func NewAuthService(sessions SessionRepository) *AuthService {
	return &AuthService{
		sessions:   sessions,
		hashCost:   bcrypt.DefaultCost,
		secretFunc: security.NewSessionSecret,
	}
}

func (service *AuthService) HasPIN() (bool, error) {
	record, _, err := service.load()
	if err != nil {
		return false, err
	}
	return record.HasPIN(), nil
}

// SetupPIN stores the first PIN. It fails once a PIN exists; use ChangePIN or ResetPIN then.
func (service *AuthService) SetupPIN(raw string) (PINResult, error) {
	pin, result := ValidatePIN(raw)
	if !result.Success {
		return result, nil
	}

	record, _, err := service.load()
	if err != nil {
		return PINResult{}, err
	}
	if record.HasPIN() {
		return pinFailure(PINErrorAlreadySet), nil
	}

	hash, err := service.hashPIN(pin)
	if err != nil {
		return PINResult{}, err
	}
	return service.replacePIN(hash, func(current models.SessionRecord) (PINResult, bool) {
		if current.HasPIN() {
			return pinFailure(PINErrorAlreadySet), false
		}
		return PINResult{}, true
	})
}

func (service *AuthService) VerifyPIN(raw string) (PINResult, error) {
	record, _, err := service.load()
	if err != nil {
		return PINResult{}, err
	}
	if !record.HasPIN() {
		return pinFailure(PINErrorNotSet), nil
	}
	if !pinMatches(record.PINHash, raw) {
		return pinFailure(PINErrorIncorrect), nil
	}
	return pinSuccess(), nil
}

func (service *AuthService) ChangePIN(currentRaw string, nextRaw string) (PINResult, error) {
	record, _, err := service.load()
	if err != nil {
		return PINResult{}, err
	}
	if !record.HasPIN() {
		return pinFailure(PINErrorNotSet), nil
	}
	if !pinMatches(record.PINHash, currentRaw) {
		return pinFailure(PINErrorCurrentIncorrect), nil
	}

	pin, result := ValidatePIN(nextRaw)
	if !result.Success {
		return result, nil
	}
	hash, err := service.hashPIN(pin)
	if err != nil {
		return PINResult{}, err
	}

	// The current PIN was checked against verifiedHash; a concurrent change invalidates that check.
	verifiedHash := record.PINHash
	return service.replacePIN(hash, func(current models.SessionRecord) (PINResult, bool) {
		if current.PINHash != verifiedHash {
			return pinFailure(PINErrorCurrentIncorrect), false
		}
		return PINResult{}, true
	})
}

// ResetPIN replaces the PIN without the current one. Only reachable from the local CLI.
func (service *AuthService) ResetPIN(nextRaw string) (PINResult, error) {
	pin, result := ValidatePIN(nextRaw)
	if !result.Success {
		return result, nil
	}

	hash, err := service.hashPIN(pin)
	if err != nil {
		return PINResult{}, err
	}
	return service.replacePIN(hash, nil)
}

// SessionGeneration reports the generation current session cookies must carry.
func (service *AuthService) SessionGeneration() (int, error) {
	record, _, err := service.load()
	if err != nil {
		return 0, err
	}
	return record.Generation, nil
}

// EndSessions invalidates every session cookie issued so far.
func (service *AuthService) EndSessions() error {
	_, err := service.sessions.Update(func(record *models.SessionRecord) error {
		record.Generation++
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSessionSaveFailed, err)
	}
	return nil
}

// SessionSecret returns the key used to sign session cookies. A non-empty override wins;
// otherwise a secret is generated on first use and persisted with the session record.
func (service *AuthService) SessionSecret(override string) (string, error) {
	if secret := strings.TrimSpace(override); secret != "" {
		return secret, nil
	}

	record, _, err := service.load()
	if err != nil {
		return "", err
	}
	if record.Secret != "" {
		return record.Secret, nil
	}

	generated, err := service.secretFunc()
	if err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}

	secret := ""
	_, err = service.sessions.Update(func(current *models.SessionRecord) error {
		if current.Secret != "" {
			secret = current.Secret
			return errSessionUnchanged
		}
		current.Secret = generated
		secret = generated
		return nil
	})
	if err != nil && !errors.Is(err, errSessionUnchanged) {
		return "", fmt.Errorf("%w: %v", ErrSessionSaveFailed, err)
	}
	return secret, nil
}

func (service *AuthService) hashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), service.hashCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPINHashFailed, err)
	}
	return string(hash), nil
}

// replacePIN writes hash under the store lock once check accepts the current record.
// Each new PIN starts a new session generation.
func (service *AuthService) replacePIN(hash string, check func(current models.SessionRecord) (PINResult, bool)) (PINResult, error) {
	rejected := PINResult{}
	_, err := service.sessions.Update(func(record *models.SessionRecord) error {
		if check != nil {
			if result, ok := check(*record); !ok {
				rejected = result
				return errSessionUnchanged
			}
		}
		record.PINHash = hash
		record.Generation++
		return nil
	})
	if errors.Is(err, errSessionUnchanged) {
		return rejected, nil
	}
	if err != nil {
		return PINResult{}, fmt.Errorf("%w: %v", ErrSessionSaveFailed, err)
	}
	return pinSuccess(), nil
}

func (service *AuthService) load() (models.SessionRecord, bool, error) {
	record, found, err := service.sessions.Load()
	if err != nil {
		return models.SessionRecord{}, false, fmt.Errorf("%w: %v", ErrSessionLoadFailed, err)
	}
	return record, found, nil
}

func pinMatches(hash string, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(raw))) == nil
}
