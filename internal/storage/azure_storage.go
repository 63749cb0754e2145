package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go-oembed-provider/pkg/models"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureMetadataFetcher resolves content metadata from JSON documents stored
// in an Azure Blob Storage container, one blob per content path.
type AzureMetadataFetcher struct {
	client    *azblob.Client
	container string
}

// NewAzureMetadataFetcher creates a blob-backed metadata fetcher
func NewAzureMetadataFetcher(accountName, accountKey, container string) (MetadataFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AzureMetadataFetcher{client: client, container: container}, nil
}

// FetchMetadata downloads the metadata document for the content URL's path.
// Size hints are ignored; blob documents describe the original dimensions and
// constraining happens in the builder.
func (s *AzureMetadataFetcher) FetchMetadata(ctx context.Context, contentURL string, maxWidth, maxHeight int) (*models.ContentMetadata, error) {
	blobName, err := blobNameForURL(contentURL)
	if err != nil {
		return nil, err
	}

	downloadResponse, err := s.client.DownloadStream(ctx, s.container, blobName, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, ErrMetadataNotFound
		}
		return nil, fmt.Errorf("download failed: %w", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	return decodeMetadata(retryReader)
}

// blobNameForURL maps a content URL to its metadata document name, e.g.
// https://mybusiness.com/videos/123 -> videos/123.json
func blobNameForURL(contentURL string) (string, error) {
	parsed, err := url.Parse(contentURL)
	if err != nil {
		return "", fmt.Errorf("invalid content URL: %w", err)
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		path = "index"
	}
	return path + ".json", nil
}
