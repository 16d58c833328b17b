package dialect

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// dataRepo is the GitHub repository dialect packs are released from.
const dataRepo = "Esukhia/botok-data"

const userAgent = "botok-go"

// Overridable in tests.
var (
	releaseAPIURL = "https://api.github.com/repos/" + dataRepo + "/releases/latest"
	downloadBase  = "https://github.com/" + dataRepo + "/releases/download"
)

// FetchOptions configure Fetch.
type FetchOptions struct {
	// BaseDir is where packs are unpacked. Empty means DefaultBaseDir.
	BaseDir string
	// Version pins a release tag. Empty asks GitHub for the latest.
	Version string
	// Client overrides the HTTP client used for the release lookup
	// and the download.
	Client *http.Client
	// Stdout receives progress messages.
	Stdout io.Writer
}

// Fetch makes sure the named pack is present under the base dir,
// downloading and unpacking the release zip when it is not. A pack
// already on disk is left untouched. An empty name means DefaultPack.
func Fetch(name string, opts FetchOptions) (Pack, error) {
	if name == "" {
		name = DefaultPack
	}
	if opts.BaseDir == "" {
		opts.BaseDir = DefaultBaseDir()
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}

	if Exists(opts.BaseDir, name) {
		fmt.Fprintf(opts.Stdout, "skip %s (already present)\n", name)
		return Pack{Name: name, Dir: Path(opts.BaseDir, name)}, nil
	}

	if err := os.MkdirAll(opts.BaseDir, 0o755); err != nil {
		return Pack{}, fmt.Errorf("create base dir: %w", err)
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}

	version := opts.Version
	if version == "" {
		v, err := latestVersion(client)
		if err != nil {
			return Pack{}, err
		}
		version = v
	}

	zipPath, err := downloadZip(client, name, version, opts.BaseDir, opts.Stdout)
	if err != nil {
		return Pack{}, err
	}
	defer os.Remove(zipPath)

	if err := unzip(zipPath, opts.BaseDir); err != nil {
		return Pack{}, err
	}

	if !Exists(opts.BaseDir, name) {
		return Pack{}, fmt.Errorf("%w: %s (release %s had no dictionary directory)", ErrPackNotFound, name, version)
	}
	fmt.Fprintf(opts.Stdout, "unpacked %s@%s -> %s\n", name, version, Path(opts.BaseDir, name))
	return Pack{Name: name, Dir: Path(opts.BaseDir, name)}, nil
}

// latestVersion asks the GitHub API for the newest release tag.
func latestVersion(client *http.Client) (string, error) {
	req, err := http.NewRequest(http.MethodGet, releaseAPIURL, nil)
	if err != nil {
		return "", fmt.Errorf("build release request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("release lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("release lookup failed: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decode release: %w", err)
	}
	if release.TagName == "" {
		return "", fmt.Errorf("release lookup returned no tag")
	}
	return release.TagName, nil
}

// downloadZip streams the release archive for the pack into a temp
// file under baseDir and returns its path.
func downloadZip(client *http.Client, name, version, baseDir string, stdout io.Writer) (string, error) {
	url := fmt.Sprintf("%s/%s/%s.zip", downloadBase, version, name)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	fmt.Fprintf(stdout, "download %s@%s\n", name, version)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: no %s.zip in release %s", ErrPackNotFound, name, version)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("download failed for %s: %s", name, resp.Status)
	}

	fh, err := os.CreateTemp(baseDir, name+"-*.zip.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmp := fh.Name()

	var written int64
	buf := make([]byte, 64*1024)
	total := resp.ContentLength
	lastPrint := time.Now()
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			wn, writeErr := fh.Write(buf[:n])
			if writeErr != nil {
				_ = fh.Close()
				_ = os.Remove(tmp)
				return "", fmt.Errorf("write temp file: %w", writeErr)
			}
			written += int64(wn)
			if time.Since(lastPrint) > 700*time.Millisecond {
				if total > 0 {
					pct := float64(written) * 100 / float64(total)
					fmt.Fprintf(stdout, "  progress: %.1f%% (%d/%d bytes)\n", pct, written, total)
				} else {
					fmt.Fprintf(stdout, "  progress: %d bytes\n", written)
				}
				lastPrint = time.Now()
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = fh.Close()
			_ = os.Remove(tmp)
			return "", fmt.Errorf("download read failed: %w", readErr)
		}
	}
	if err := fh.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmp, nil
}

// unzip unpacks the archive into destDir, refusing entries whose
// paths would escape it.
func unzip(zipPath, destDir string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if err := extractOne(f, destDir); err != nil {
			return err
		}
	}
	return nil
}

func extractOne(f *zip.File, destDir string) error {
	dest := filepath.Join(destDir, filepath.FromSlash(f.Name))
	if !strings.HasPrefix(dest, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("archive entry escapes destination: %s", f.Name)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}
	return nil
}
