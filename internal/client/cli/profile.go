package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/avelichko/skillswap/internal/netx"
)

// UploadPhoto asks for a local image file and uploads it to the presigned URL
// issued by the server.
func (a *App) UploadPhoto(ctx context.Context) {
	path, err := GetSimpleText(a.reader, a.out, "Path to photo")
	if err != nil {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(a.out, "Could not read file: %v\n", err)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, url, err := a.client.RequestPhotoUpload(ctx)
	if err != nil {
		a.printAPIError(err)
		return
	}
	if err := netx.UploadToPresignedURL(ctx, url, data, contentType); err != nil {
		fmt.Fprintf(a.out, "Upload failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Profile photo updated")
}
