package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// AppInfo identifies the source revision a Firefox build was made from.
type AppInfo struct {
	SourceStamp      string
	SourceRepository string
}

// ApplicationINI returns the path of application.ini inside an unpacked build.
func ApplicationINI(autDir string) string {
	return filepath.Join(autDir, "firefox", "application.ini")
}

// LoadAppInfo reads the [App] section of the build's application.ini.
func LoadAppInfo(autDir string) (*AppInfo, error) {
	path := ApplicationINI(autDir)
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config.LoadAppInfo: %w", err)
	}
	sec, err := f.GetSection("App")
	if err != nil {
		return nil, fmt.Errorf("config.LoadAppInfo: %s: %w", path, err)
	}
	info := &AppInfo{
		SourceStamp:      sec.Key("SourceStamp").String(),
		SourceRepository: sec.Key("SourceRepository").String(),
	}
	if info.SourceStamp == "" || info.SourceRepository == "" {
		return nil, fmt.Errorf("config.LoadAppInfo: %s: SourceStamp and SourceRepository are required", path)
	}
	return info, nil
}
