package character

import (
	"context"
	"log/slog"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/errors"
	"github.com/gamewaifu/waifu-api/internal/pkg/clock"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500

	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errOwnerIDEmpty     = "owner ID cannot be empty"
)

type gormRepository struct {
	db    *gorm.DB
	clock clock.Clock
}

// GormConfig contains configuration for the gorm character repository.
type GormConfig struct {
	DB    *gorm.DB
	Clock clock.Clock
}

// Validate validates the GormConfig.
func (cfg *GormConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.DB == nil {
		return errors.InvalidArgument("db cannot be nil")
	}
	return nil
}

// NewGorm creates a relational character repository. Row locks use
// SELECT ... FOR UPDATE where the dialect supports it; SQLite serialises
// writers at the database level instead.
func NewGorm(cfg *GormConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &gormRepository{
		db:    cfg.DB,
		clock: c,
	}, nil
}

func (r *gormRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.Character.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&entities.Character{}).Where("id = ?", input.Character.ID).Count(&existing).Error; err != nil {
			return errors.Wrap(err, "failed to check existence")
		}
		if existing > 0 {
			return errors.AlreadyExists("character already exists").WithMeta("character_id", input.Character.ID)
		}

		if input.Activate {
			input.Character.IsActive = true
			if err := deactivateOthers(tx, input.Character.OwnerID, input.Character.ID); err != nil {
				return err
			}
		}

		if err := tx.Create(input.Character).Error; err != nil {
			return errors.Wrap(err, "failed to create character")
		}
		return nil
	})
	if err != nil {
		return nil, passthrough(err, "failed to create character")
	}

	slog.DebugContext(ctx, "character created",
		"character_id", input.Character.ID,
		"owner_id", input.Character.OwnerID,
		"active", input.Character.IsActive)

	return &CreateOutput{Character: input.Character}, nil
}

func (r *gormRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	var c entities.Character
	err := r.db.WithContext(ctx).Where("id = ?", input.ID).First(&c).Error
	if err != nil {
		return nil, notFoundOr(err, input.ID)
	}

	return &GetOutput{Character: &c}, nil
}

func (r *gormRepository) GetActive(ctx context.Context, input GetActiveInput) (*GetActiveOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	var c entities.Character
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_active = ?", input.OwnerID, true).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.NotFound("owner has no active character").WithMeta("owner_id", input.OwnerID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get active character")
	}

	return &GetActiveOutput{Character: &c}, nil
}

func (r *gormRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	q := r.db.WithContext(ctx).Where("owner_id = ?", input.OwnerID)
	if !input.IncludeLost {
		q = q.Where("is_lost = ?", false)
	}

	var chars []*entities.Character
	if err := q.Order("created_at ASC, id ASC").Find(&chars).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}

	return &ListByOwnerOutput{Characters: chars}, nil
}

func (r *gormRepository) FindOpponent(ctx context.Context, input FindOpponentInput) (*FindOpponentOutput, error) {
	var c entities.Character
	err := r.db.WithContext(ctx).
		Where("owner_id <> ?", input.ExcludeOwnerID).
		Where("is_lost = ? AND current_health > 0", false).
		Where("level BETWEEN ? AND ?", input.MinLevel, input.MaxLevel).
		Order("RANDOM()").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.NotFound("no opponent available").
			WithMeta("min_level", input.MinLevel).
			WithMeta("max_level", input.MaxLevel)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find opponent")
	}

	return &FindOpponentOutput{Character: &c}, nil
}

func (r *gormRepository) WithExclusiveAccess(ctx context.Context, ids []string, fn ExclusiveFunc) error {
	if len(ids) == 0 {
		return errors.InvalidArgument("at least one character ID is required")
	}

	ordered := make([]string, len(ids))
	copy(ordered, ids)
	sort.Strings(ordered)
	for i, id := range ordered {
		if id == "" {
			return errors.InvalidArgument(errCharacterIDEmpty)
		}
		if i > 0 && ordered[i-1] == id {
			return errors.InvalidArgumentf("character %s requested twice", id)
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		byID := make(map[string]*entities.Character, len(ordered))
		for _, id := range ordered {
			var c entities.Character
			err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&c).Error
			if err != nil {
				return notFoundOr(err, id)
			}
			byID[id] = &c
		}

		locked := make([]*entities.Character, len(ids))
		for i, id := range ids {
			locked[i] = byID[id]
		}

		return fn(ctx, &gormTx{db: db, clock: r.clock}, locked)
	})
	if err != nil {
		return passthrough(err, "exclusive access failed")
	}

	return nil
}

func (r *gormRepository) SweepResentment(ctx context.Context, input SweepResentmentInput) (*SweepResentmentOutput, error) {
	if input.RecoveryLevels <= 0 {
		return nil, errors.InvalidArgument("recovery levels must be positive")
	}

	// Every SET expression sees the pre-update row, so a row that recovered is
	// never marked lost even when its window has also expired.
	result := r.db.WithContext(ctx).
		Model(&entities.Character{}).
		Where("is_resentful = ?", true).
		Where("(level >= resentment_base_level + ? OR resentment_start <= ?)", input.RecoveryLevels, input.Cutoff).
		Updates(map[string]interface{}{
			"is_lost": gorm.Expr(
				"CASE WHEN level < resentment_base_level + ? THEN TRUE ELSE is_lost END", input.RecoveryLevels),
			"is_active": gorm.Expr(
				"CASE WHEN level < resentment_base_level + ? THEN FALSE ELSE is_active END", input.RecoveryLevels),
			"is_resentful":          false,
			"resentment_base_level": nil,
			"resentment_start":      nil,
			"updated_at":            input.Now,
		})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to sweep resentment")
	}

	return &SweepResentmentOutput{Transitioned: result.RowsAffected}, nil
}

func (r *gormRepository) ListHealthRegenCandidates(
	ctx context.Context,
	input ListHealthRegenCandidatesInput,
) (*ListHealthRegenCandidatesOutput, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&entities.Character{}).
		Where("is_lost = ? AND current_health < max_health AND health_regen_rate > 0", false).
		Where("id > ?", input.AfterID).
		Order("id ASC").
		Limit(clampLimit(input.Limit)).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list regeneration candidates")
	}

	return &ListHealthRegenCandidatesOutput{IDs: ids}, nil
}

func (r *gormRepository) MarkRested(ctx context.Context, input MarkRestedInput) (*MarkRestedOutput, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Character{}).
		Where("is_lost = ? AND (current_health >= max_health OR last_rest IS NULL)", false).
		Updates(map[string]interface{}{"last_rest": input.Now})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to mark rested")
	}

	return &MarkRestedOutput{Updated: result.RowsAffected}, nil
}

func (r *gormRepository) RegenerateMagic(ctx context.Context, input RegenerateMagicInput) (*RegenerateMagicOutput, error) {
	if input.Percent < 0 || input.Minimum < 0 {
		return nil, errors.InvalidArgument("regeneration amounts cannot be negative")
	}

	// integer division floors for the non-negative values stored here
	gain := "CASE WHEN max_magic * ? / 100 < ? THEN ? ELSE max_magic * ? / 100 END"
	result := r.db.WithContext(ctx).
		Model(&entities.Character{}).
		Where("is_lost = ? AND current_magic < max_magic", false).
		Updates(map[string]interface{}{
			"current_magic": gorm.Expr(
				"CASE WHEN current_magic + "+gain+" > max_magic THEN max_magic ELSE current_magic + "+gain+" END",
				input.Percent, input.Minimum, input.Minimum, input.Percent,
				input.Percent, input.Minimum, input.Minimum, input.Percent,
			),
			"updated_at": input.Now,
		})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to regenerate magic")
	}

	return &RegenerateMagicOutput{Updated: result.RowsAffected}, nil
}

func (r *gormRepository) ListClickSessions(
	ctx context.Context,
	input ListClickSessionsInput,
) (*ListClickSessionsOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	var sessions []*entities.ClickSession
	err := r.db.WithContext(ctx).
		Where("character_id = ?", input.CharacterID).
		Order("created_at DESC, id DESC").
		Limit(clampLimit(input.Limit)).
		Find(&sessions).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list click sessions")
	}

	return &ListClickSessionsOutput{Sessions: sessions}, nil
}

func (r *gormRepository) ListBattles(ctx context.Context, input ListBattlesInput) (*ListBattlesOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	var battles []*entities.BattleRecord
	err := r.db.WithContext(ctx).
		Where("attacker_id = ? OR defender_id = ?", input.CharacterID, input.CharacterID).
		Order("created_at DESC, id DESC").
		Limit(clampLimit(input.Limit)).
		Find(&battles).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list battles")
	}

	return &ListBattlesOutput{Battles: battles}, nil
}

type gormTx struct {
	db    *gorm.DB
	clock clock.Clock
}

func (t *gormTx) Save(ctx context.Context, character *entities.Character) error {
	if character == nil {
		return errors.InvalidArgument(errCharacterNil)
	}

	character.ClampVitals()
	if character.CurrentLove < 0 {
		character.CurrentLove = 0
	}
	if character.IsLost {
		character.IsResentful = false
		character.IsActive = false
		character.ResentmentBaseLevel = nil
		character.ResentmentStart = nil
	}

	result := t.db.WithContext(ctx).Model(character).Select("*").Omit("created_at").Updates(character)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to save character")
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("character not found").WithMeta("character_id", character.ID)
	}
	return nil
}

func (t *gormTx) AppendClickSession(ctx context.Context, session *entities.ClickSession) error {
	if session == nil || session.ID == "" {
		return errors.InvalidArgument("click session requires an ID")
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = t.clock.Now()
	}

	if err := t.db.WithContext(ctx).Create(session).Error; err != nil {
		return errors.Wrap(err, "failed to append click session")
	}
	return nil
}

func (t *gormTx) BattleExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := t.db.WithContext(ctx).Model(&entities.BattleRecord{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to look up battle record")
	}
	return count > 0, nil
}

func (t *gormTx) CreateBattle(ctx context.Context, record *entities.BattleRecord) error {
	if record == nil || record.ID == "" {
		return errors.InvalidArgument("battle record requires an ID")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = t.clock.Now()
	}

	if err := t.db.WithContext(ctx).Create(record).Error; err != nil {
		return errors.Wrap(err, "failed to create battle record")
	}
	return nil
}

func (t *gormTx) DeactivateOthers(ctx context.Context, ownerID, keepID string) error {
	return deactivateOthers(t.db.WithContext(ctx), ownerID, keepID)
}

func deactivateOthers(db *gorm.DB, ownerID, keepID string) error {
	err := db.Model(&entities.Character{}).
		Where("owner_id = ? AND id <> ? AND is_active = ?", ownerID, keepID, true).
		Update("is_active", false).Error
	if err != nil {
		return errors.Wrap(err, "failed to deactivate characters")
	}
	return nil
}

// passthrough keeps errors raised inside a transaction intact so callers
// see the original code and message.
func passthrough(err error, message string) error {
	var appErr *errors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return errors.Wrap(err, message)
}

func notFoundOr(err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFoundf("character %s not found", id).WithMeta("character_id", id)
	}
	return errors.Wrapf(err, "failed to load character %s", id)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
