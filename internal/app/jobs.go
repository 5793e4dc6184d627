package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/atelier-mireille/backend/internal/domain"
	"github.com/atelier-mireille/backend/internal/imagecodec"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@daily", func() {
		a.SweepOrphanUploads()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SweepOrphanUploads removes upload files that are no longer referenced by
// any order or contact request and are older than the retention window.
// Files are externally owned blobs; only unreferenced ones are touched.
func (a *Application) SweepOrphanUploads() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	dir := a.appConfig.Web.UploadDir
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.L().Warn("upload sweep: read dir failed", zap.Error(err))
		}
		return
	}

	referenced := a.referencedUploadNames()
	retention := a.GetSettingsInt64Value("uploads", "retention_days")
	if retention <= 0 {
		retention = 30
	}
	cutoff := time.Now().Add(-time.Duration(retention) * 24 * time.Hour)

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if referenced[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			zap.L().Warn("upload sweep: remove failed", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		zap.L().Info("upload sweep completed", zap.Int("removed", removed))
	}
}

// referencedUploadNames collects the basenames of every attachment path
// stored on orders and contact requests.
func (a *Application) referencedUploadNames() map[string]bool {
	names := make(map[string]bool)

	var orders []domain.CustomOrder
	if err := a.gormDB.Select("images").Find(&orders).Error; err != nil {
		zap.L().Warn("upload sweep: query orders failed", zap.Error(err))
	}
	for _, o := range orders {
		for _, ref := range imagecodec.Decode(o.Images) {
			names[filepath.Base(ref)] = true
		}
	}

	var contacts []domain.ContactRequest
	if err := a.gormDB.Select("image_path").Find(&contacts).Error; err != nil {
		zap.L().Warn("upload sweep: query contacts failed", zap.Error(err))
	}
	for _, c := range contacts {
		if c.ImagePath != "" {
			names[filepath.Base(c.ImagePath)] = true
		}
	}
	return names
}
