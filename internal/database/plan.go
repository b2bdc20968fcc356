package database

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/akyairhashvil/vrtimer/internal/models"
)

const settingPlanPrep = "plan.prep"

// SavePlan replaces the remembered plan.
func (d *Database) SavePlan(ctx context.Context, plan models.Plan) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		err := d.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "DELETE FROM plan_intervals"); err != nil {
				return err
			}
			for i, iv := range plan.Intervals {
				if _, err := tx.ExecContext(ctx,
					"INSERT INTO plan_intervals (position, workout_minutes, break_minutes) VALUES (?, ?, ?)",
					i, iv.WorkoutMinutes, iv.BreakMinutes); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
				settingPlanPrep, strconv.Itoa(plan.PrepMinutes))
			return err
		})
		return wrapErr(EntityPlan, "save", 0, err)
	})
}

// LoadPlan returns the remembered plan. ok is false when none was saved.
func (d *Database) LoadPlan(ctx context.Context) (plan models.Plan, ok bool, err error) {
	prep, found, err := d.GetSetting(ctx, settingPlanPrep)
	if err != nil || !found {
		return models.Plan{}, false, err
	}
	if plan.PrepMinutes, err = strconv.Atoi(prep); err != nil {
		return models.Plan{}, false, wrapErr(EntityPlan, "load", 0, err)
	}
	plan.Intervals, err = withDBContextResult(d, ctx, func(ctx context.Context) ([]models.IntervalSpec, error) {
		rows, err := d.DB.QueryContext(ctx, "SELECT workout_minutes, break_minutes FROM plan_intervals ORDER BY position ASC")
		if err != nil {
			return nil, err
		}
		return scanIntervals(rows)
	})
	if err != nil {
		return models.Plan{}, false, wrapErr(EntityPlan, "load", 0, err)
	}
	return plan, true, nil
}
