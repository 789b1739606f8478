package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
	"github.com/immxrtalbeast/karaoke_queue/internal/repository/model"
	"gorm.io/gorm"
)

const nowPlayingRowID = 1

type PostgresCustomerRepository struct {
	db *gorm.DB
}

func NewPostgresCustomerRepository(db *gorm.DB) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

// Save upserts the whole customer record. Song rows are replaced rather than
// diffed, inside one transaction, so observers see either the old record or
// the new one, never a partial merge.
func (r *PostgresCustomerRepository) Save(ctx context.Context, customer *domain.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if customer == nil {
		return errors.New("customer is nil")
	}

	rec := toModelCustomer(customer)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"name":             rec.Name,
			"first_order_time": rec.FirstOrderTime,
			"start_round":      rec.StartRound,
		}

		res := tx.Model(&model.Customer{}).Where("id = ?", rec.ID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			row := model.Customer{
				ID:             rec.ID,
				Name:           rec.Name,
				FirstOrderTime: rec.FirstOrderTime,
				StartRound:     rec.StartRound,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("customer_id = ?", rec.ID).Delete(&model.Song{}).Error; err != nil {
			return err
		}

		if len(rec.Songs) > 0 {
			if err := tx.Create(&rec.Songs).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *PostgresCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var customer model.Customer
	err := r.db.WithContext(ctx).Preload("Songs").First(&customer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	return toDomainCustomer(&customer), nil
}

func (r *PostgresCustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var customers []model.Customer
	if err := r.db.WithContext(ctx).Preload("Songs").Find(&customers).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.Customer, 0, len(customers))
	for i := range customers {
		result = append(result, toDomainCustomer(&customers[i]))
	}

	return result, nil
}

func (r *PostgresCustomerRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Delete(&model.Customer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

type PostgresNowPlayingRepository struct {
	db *gorm.DB
}

func NewPostgresNowPlayingRepository(db *gorm.DB) *PostgresNowPlayingRepository {
	return &PostgresNowPlayingRepository{db: db}
}

func (r *PostgresNowPlayingRepository) Get(ctx context.Context) (*domain.NowPlaying, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var row model.NowPlaying
	err := r.db.WithContext(ctx).First(&row, "id = ?", nowPlayingRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNowPlayingNotSet
		}
		return nil, err
	}

	return toDomainNowPlaying(&row), nil
}

func (r *PostgresNowPlayingRepository) Set(ctx context.Context, np *domain.NowPlaying) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if np == nil {
		return errors.New("now playing is nil")
	}

	row := toModelNowPlaying(np)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.NowPlaying{}, "id = ?", nowPlayingRowID).Error; err != nil {
			return err
		}
		return tx.Create(row).Error
	})
}

func (r *PostgresNowPlayingRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&model.NowPlaying{}, "id = ?", nowPlayingRowID).Error
}

func toModelCustomer(customer *domain.Customer) *model.Customer {
	songs := make([]model.Song, 0, len(customer.Songs))
	for i, s := range customer.Songs {
		if s == nil {
			continue
		}
		songs = append(songs, model.Song{
			ID:          s.ID,
			CustomerID:  customer.ID,
			Position:    i,
			IsPriority:  s.IsPriority,
			Status:      string(s.Status),
			AddedAt:     s.AddedAt.UTC(),
			VideoID:     s.VideoID,
			Title:       s.Title,
			CleanTitle:  s.CleanTitle,
			Artist:      s.Artist,
			Thumbnail:   s.Thumbnail,
			Source:      s.Source,
			BeatOptions: encodeBeatOptions(s.BeatOptions),
		})
	}

	return &model.Customer{
		ID:             customer.ID,
		Name:           customer.Name,
		FirstOrderTime: customer.FirstOrderTime.UTC(),
		StartRound:     customer.StartRound,
		Songs:          songs,
	}
}

func toDomainCustomer(customer *model.Customer) *domain.Customer {
	ordered := make([]model.Song, len(customer.Songs))
	copy(ordered, customer.Songs)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	songs := make([]*domain.SongRequest, len(ordered))
	for i := range ordered {
		s := &ordered[i]
		songs[i] = &domain.SongRequest{
			ID:          s.ID,
			IsPriority:  s.IsPriority,
			Status:      domain.SongStatus(s.Status),
			AddedAt:     s.AddedAt.UTC(),
			VideoID:     s.VideoID,
			Title:       s.Title,
			CleanTitle:  s.CleanTitle,
			Artist:      s.Artist,
			Thumbnail:   s.Thumbnail,
			Source:      s.Source,
			BeatOptions: decodeBeatOptions(s.BeatOptions),
		}
	}

	return &domain.Customer{
		ID:             customer.ID,
		Name:           customer.Name,
		FirstOrderTime: customer.FirstOrderTime.UTC(),
		StartRound:     customer.StartRound,
		Songs:          songs,
	}
}

func toModelNowPlaying(np *domain.NowPlaying) *model.NowPlaying {
	return &model.NowPlaying{
		ID:          nowPlayingRowID,
		VideoID:     np.VideoID,
		Title:       np.Title,
		CleanTitle:  np.CleanTitle,
		Artist:      np.Artist,
		AddedBy:     np.AddedBy,
		Duration:    np.Duration,
		CurrentTime: np.CurrentTime,
		UpdatedAt:   np.UpdatedAt.UTC(),
		BeatOptions: encodeBeatOptions(np.BeatOptions),
	}
}

func toDomainNowPlaying(row *model.NowPlaying) *domain.NowPlaying {
	return &domain.NowPlaying{
		VideoID:     row.VideoID,
		Title:       row.Title,
		CleanTitle:  row.CleanTitle,
		Artist:      row.Artist,
		AddedBy:     row.AddedBy,
		Duration:    row.Duration,
		CurrentTime: row.CurrentTime,
		UpdatedAt:   row.UpdatedAt.UTC(),
		BeatOptions: decodeBeatOptions(row.BeatOptions),
	}
}

func encodeBeatOptions(opts []domain.BeatOption) string {
	if len(opts) == 0 {
		return ""
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return ""
	}
	return string(raw)
}

func decodeBeatOptions(raw string) []domain.BeatOption {
	if raw == "" {
		return nil
	}
	var opts []domain.BeatOption
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return nil
	}
	return opts
}
