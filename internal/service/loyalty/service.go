package loyalty

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	loyaltyRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/loyalty"
)

// Service сервис начисления и списания баллов лояльности
type Service struct {
	accountRepo  AccountRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса баллов
func NewService(accountRepo AccountRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		accountRepo:  accountRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Get возвращает баланс и историю баллов
// Пользователь без счета получает пустой баланс
func (s *Service) Get(ctx context.Context, principal domain.Principal, userID string) (*domain.LoyaltyAccount, error) {
	if !principal.IsAdmin && principal.ID != userID {
		s.logger.Warn("GetLoyalty: access denied for user=%s to account=%s", principal.ID, userID)
		return nil, ErrAccessDenied
	}

	account, err := s.accountRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, loyaltyRepo.ErrAccountNotFound) {
			return &domain.LoyaltyAccount{UserID: userID, PointsHistory: []domain.PointsEntry{}}, nil
		}
		s.logger.Error("GetLoyalty: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return account, nil
}

// Award начисляет баллы и добавляет запись earn в историю
// Счет создается при первом начислении
func (s *Service) Award(ctx context.Context, userID string, points int, description string) error {
	if points <= 0 {
		return nil
	}

	s.logger.Info("AwardPoints: user=%s, points=%d", userID, points)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		entry := domain.PointsEntry{
			Type:        domain.PointsEarn,
			Amount:      points,
			Date:        s.timeProvider.Now().UTC(),
			Description: description,
		}

		account, err := s.accountRepo.Get(txCtx, userID)
		if errors.Is(err, loyaltyRepo.ErrAccountNotFound) {
			return s.accountRepo.Create(txCtx, &domain.LoyaltyAccount{
				UserID:        userID,
				Points:        points,
				PointsHistory: []domain.PointsEntry{entry},
			})
		}
		if err != nil {
			return err
		}

		account.Points += points
		account.PointsHistory = append(account.PointsHistory, entry)
		return s.accountRepo.Update(txCtx, account)
	})
	if err != nil {
		s.logger.Error("AwardPoints: failed to award %d points to user=%s: %v", points, userID, err)
		return fmt.Errorf("%w: Award - %v", ErrInternal, err)
	}

	return nil
}

// Redeem списывает баллы и добавляет запись redeem в историю
func (s *Service) Redeem(ctx context.Context, principal domain.Principal, userID string, points int, description string) (*domain.LoyaltyAccount, error) {
	s.logger.Info("RedeemPoints: user=%s, points=%d, requested by=%s", userID, points, principal.ID)

	if !principal.IsAdmin && principal.ID != userID {
		s.logger.Warn("RedeemPoints: access denied for user=%s to account=%s", principal.ID, userID)
		return nil, ErrAccessDenied
	}
	if points <= 0 {
		return nil, fmt.Errorf("%w: points must be positive", ErrInvalidInput)
	}

	var result *domain.LoyaltyAccount

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		account, err := s.accountRepo.Get(txCtx, userID)
		if errors.Is(err, loyaltyRepo.ErrAccountNotFound) {
			return ErrInsufficientPoints
		}
		if err != nil {
			return fmt.Errorf("%w: Redeem - repository error: %v", ErrInternal, err)
		}

		if account.Points < points {
			return ErrInsufficientPoints
		}

		account.Points -= points
		account.PointsHistory = append(account.PointsHistory, domain.PointsEntry{
			Type:        domain.PointsRedeem,
			Amount:      points,
			Date:        s.timeProvider.Now().UTC(),
			Description: description,
		})

		if err := s.accountRepo.Update(txCtx, account); err != nil {
			return fmt.Errorf("%w: Redeem - repository error: %v", ErrInternal, err)
		}

		result = account
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientPoints) {
			s.logger.Warn("RedeemPoints: user=%s has not enough points for %d", userID, points)
		} else {
			s.logger.Error("RedeemPoints: failed for user=%s: %v", userID, err)
		}
		return nil, err
	}

	s.logger.Info("RedeemPoints: user=%s redeemed %d points, balance=%d", userID, points, result.Points)
	return result, nil
}
