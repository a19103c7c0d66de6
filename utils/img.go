package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

var (
	ErrUnsupportedFormat = errors.New("format d'image non supporté")
	ErrInvalidImage      = errors.New("image invalide ou corrompue")
)

// Boîte englobante des avatars, ratio préservé.
const avatarBound = 125

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// SaveAvatar valide l'extension AVANT toute lecture, décode, corrige
// l'orientation EXIF, réduit dans une boîte 125x125 et écrit le fichier
// sous un nom aléatoire (extension d'origine conservée). Retourne le nom
// de fichier généré.
func SaveAvatar(fh *multipart.FileHeader, dir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buf, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	exifData, _ := exif.Decode(bytes.NewReader(buf))
	orientation := 1
	if exifData != nil {
		if tag, err := exifData.Get(exif.Orientation); err == nil {
			orientation, _ = tag.Int(0)
		}
	}

	var img image.Image
	switch ext {
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(bytes.NewReader(buf))
	case ".png":
		img, err = png.Decode(bytes.NewReader(buf))
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	switch orientation {
	case 3:
		img = imaging.Rotate180(img)
	case 6:
		img = imaging.Rotate270(img)
	case 8:
		img = imaging.Rotate90(img)
	}

	img = imaging.Fit(img, avatarBound, avatarBound, imaging.Lanczos)

	randStr, err := RandomString64()
	if err != nil {
		return "", err
	}
	name := randStr + ext

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return name, nil
}
