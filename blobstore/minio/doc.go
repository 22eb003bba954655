// Package minio provides a MinIO implementation of the blobstore.BlobStore
// interface for S3-compatible object storage.
//
// # Usage
//
//	client, err := minio.New("play.min.io", &minio.Options{
//	    Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	store := miniostore.NewStore(client, "catalogs", "asl/")
//
//	err = cat.Save(ctx, store, "bic.catalog")
package minio
