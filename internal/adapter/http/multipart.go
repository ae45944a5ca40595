package http

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
)

// Uploads are images; 32 MiB covers a full gallery batch.
const maxUploadBytes = 32 << 20

func readFile(header *multipart.FileHeader) (media.File, error) {
	f, err := header.Open()
	if err != nil {
		return media.File{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return media.File{}, err
	}
	return media.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// formFiles collects all files submitted under the given multipart field.
func formFiles(r *http.Request, field string) ([]media.File, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, err
		}
	}
	headers := r.MultipartForm.File[field]
	files := make([]media.File, 0, len(headers))
	for _, header := range headers {
		file, err := readFile(header)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
