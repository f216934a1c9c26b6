package media

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/rwcarlsen/goexif/exif"
)

// PhotoTakenAt extracts the EXIF capture time of a stored photo as a unix
// timestamp. When a photo of a missing person was taken is worth showing,
// so it is read once at upload time and kept on the record. Returns nil
// when the file carries no usable EXIF data.
func (s *UploadStore) PhotoTakenAt(storedName string) (*int64, error) {
	file, err := os.Open(filepath.Join(s.basePath, storedName))
	if err != nil {
		return nil, fmt.Errorf("metadata: failed to open stored photo %s: %w", storedName, err)
	}
	defer file.Close()

	exifData, err := exif.Decode(file)
	if err != nil {
		// not necessarily an error, most phone exports strip EXIF
		log.Printf("metadata: No EXIF data found for %s: %v", storedName, err)
		return nil, nil
	}

	dt, err := exifData.DateTime()
	if err != nil {
		log.Printf("metadata: Could not read DateTime for %s: %v", storedName, err)
		return nil, nil
	}

	ts := dt.Unix()
	return &ts, nil
}
