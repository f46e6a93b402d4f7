package repository

import (
	"context"
	"database/sql"
	"errors"

	"talent-match/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUserSkillNotFound  = errors.New("skill not found")
	ErrUserSkillForbidden = errors.New("forbidden")
)

type UserSkill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	ProficiencyLevel float64
	Status           string
	YearsExperience  int
}

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error)
	SkillExistsByID(ctx context.Context, skillID uuid.UUID) (bool, error)
	Create(ctx context.Context, us UserSkill) (UserSkill, error)
	Update(ctx context.Context, us UserSkill) (UserSkill, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

const userSkillColumns = `us.id, us.user_id, us.skill_id, s.name,
	 COALESCE(us.proficiency_level, 0), COALESCE(us.status, 'claimed'), COALESCE(us.years_experience, 0)`

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userSkillColumns+`
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserSkill, 0)
	for rows.Next() {
		var us UserSkill
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName,
			&us.ProficiencyLevel, &us.Status, &us.YearsExperience); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) SkillExistsByID(ctx context.Context, skillID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, skillID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserSkillRepository) Create(ctx context.Context, us UserSkill) (UserSkill, error) {
	if us.Status == "" {
		us.Status = "claimed"
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, proficiency_level, status, years_experience)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		us.ID, us.UserID, us.SkillID, us.ProficiencyLevel, us.Status, us.YearsExperience,
	)
	if err != nil {
		return UserSkill{}, err
	}
	return r.findByID(ctx, us.ID, us.UserID)
}

func (r *PostgresUserSkillRepository) Update(ctx context.Context, us UserSkill) (UserSkill, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE user_skills
		 SET proficiency_level = $1, years_experience = $2
		 WHERE id = $3 AND user_id = $4`,
		us.ProficiencyLevel, us.YearsExperience, us.ID, us.UserID,
	)
	if err != nil {
		return UserSkill{}, err
	}
	if rowsAffected == 0 {
		return UserSkill{}, ErrUserSkillNotFound
	}
	return r.findByID(ctx, us.ID, us.UserID)
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	var owner uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT user_id FROM user_skills WHERE id = $1`, id)
	if err := row.Scan(&owner); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return ErrUserSkillNotFound
		}
		return err
	}
	if owner != userID {
		return ErrUserSkillForbidden
	}

	_, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE id = $1`, id)
	return err
}

func (r *PostgresUserSkillRepository) findByID(ctx context.Context, id, userID uuid.UUID) (UserSkill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userSkillColumns+`
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.id = $1 AND us.user_id = $2`,
		id, userID,
	)

	var us UserSkill
	if err := row.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName,
		&us.ProficiencyLevel, &us.Status, &us.YearsExperience); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return UserSkill{}, ErrUserSkillNotFound
		}
		return UserSkill{}, err
	}
	return us, nil
}
