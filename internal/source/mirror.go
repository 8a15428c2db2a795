package source

import (
	"fmt"
	"os"
	"os/exec"

	"specmap/internal/logging"
)

// MirrorSource reads files from a shallow checkout of a remote mirror.
// It embeds a LocalSource over the temporary checkout directory;
// Cleanup removes the checkout.
type MirrorSource struct {
	*LocalSource
	tmpDir string
	logger *logging.Logger
}

// CloneMirror performs a shallow clone of url into a temporary
// directory and returns a source over it. The caller owns Cleanup.
func CloneMirror(url string, logger *logging.Logger) (*MirrorSource, error) {
	tmpDir, err := os.MkdirTemp("", "specmap-mirror-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create mirror dir: %w", err)
	}

	cmd := exec.Command("git", "clone", "--depth", "1", "--quiet", url, tmpDir)
	if out, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to clone mirror %s: %v: %s", url, err, string(out))
	}

	logger.Debug("Cloned mirror", map[string]interface{}{
		"url": url,
		"dir": tmpDir,
	})

	return &MirrorSource{
		LocalSource: NewLocalSource(tmpDir),
		tmpDir:      tmpDir,
		logger:      logger,
	}, nil
}

// Cleanup removes the temporary checkout.
func (s *MirrorSource) Cleanup() error {
	if s.tmpDir == "" {
		return nil
	}
	err := os.RemoveAll(s.tmpDir)
	s.tmpDir = ""
	if err != nil {
		s.logger.Warn("Failed to remove mirror checkout", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return err
}
