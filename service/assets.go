package service

import (
	"candideit/app_error"
	"candideit/filestorage"
	"candideit/logging"
	"context"
	"errors"
	"mime/multipart"
)

// storeAsset saves an optional upload and returns its key, or "" when there
// is nothing to store.
func storeAsset(ctx context.Context, storage filestorage.FileStorage, kind string, field string, header *multipart.FileHeader, maxBytes int64) (string, error) {
	if header == nil {
		return "", nil
	}
	key, err := filestorage.StoreUpload(ctx, storage, kind, header, maxBytes)
	switch {
	case errors.Is(err, filestorage.ErrUnsupportedType):
		return "", app_error.WrapValidation(err, field, "Sube una imagen válida. El archivo que subiste no es una imagen o está corrupto.")
	case errors.Is(err, filestorage.ErrTooLarge):
		return "", app_error.WrapValidation(err, field, "El archivo es demasiado grande.")
	}
	return key, err
}

func discardAsset(ctx context.Context, storage filestorage.FileStorage, key string) {
	if key == "" {
		return
	}
	if err := storage.Delete(ctx, key); err != nil {
		logging.Log.WithError(err).Warnf("STORAGE: could not delete %s", key)
	}
}

func assetURL(storage filestorage.FileStorage, key string) string {
	if key == "" {
		return ""
	}
	return storage.URL(key)
}
