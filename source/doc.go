// Package source opens the byte stream behind an MCS file location.
//
// A location is one of:
//
//	firmware.mcs            local file
//	-                       standard input
//	s3://bucket/key.mcs     object in S3 or any S3 compatible store (MinIO, Ceph, Garage)
//
// Locations ending in .gz, .zst/.zstd or .lz4 are decompressed transparently.
//
// # Usage
//
//	rc, err := source.Open(ctx, "s3://releases/board-a/rom.mcs.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rc.Close()
//
// The returned handle owns every underlying resource (file, HTTP body,
// decompressor). Closing it releases all of them, whichever way the caller
// stops reading.
//
// # Configuration
//
// S3 access defaults come from the environment:
//
//	MCS_S3_ENDPOINT   endpoint host[:port] (default s3.amazonaws.com)
//	MCS_S3_REGION     bucket region (optional)
//	MCS_S3_INSECURE   "1" or "true" to use plain HTTP
//
// Credentials are read from AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY or
// MINIO_ROOT_USER/MINIO_ROOT_PASSWORD. Options override all of these.
package source
