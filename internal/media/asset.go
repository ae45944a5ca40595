package media

import "context"

// MaxGallerySize bounds how many images a single listing gallery may hold.
const MaxGallerySize = 7

// AssetHandle identifies one externally hosted image. The URL is what clients
// display; the DeleteKey is the remote object key and is used only for
// cleanup, so it never appears in public JSON payloads.
type AssetHandle struct {
	URL       string `bson:"url" json:"url"`
	DeleteKey string `bson:"delete_key" json:"-"`
}

// File is a raw image payload handed to the coordinator for upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// AssetStore is the port to the remote object storage service. The store has
// no notion of which record references an asset; this application is the sole
// authority tracking liveness.
type AssetStore interface {
	Upload(ctx context.Context, file File) (AssetHandle, error)
	Delete(ctx context.Context, deleteKey string) error
}
