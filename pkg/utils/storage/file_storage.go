package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"hostelhub_backend/pkg/utils/image"
)

const MaxFileSize = 5 * 1024 * 1024 // 5MB

type Storage struct {
	client *s3.Client
	bucket string
	region string
}

// New S3 client'ı kurar; AWS anahtarları env'de varsa statik credential
// olarak kullanılır, yoksa default chain devreye girer.
func New(bucket, region string) (*Storage, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}

	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, os.Getenv("AWS_SECRET_ACCESS_KEY"), ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	return &Storage{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// UploadImage resmi kontrol eder, optimize eder ve yükler
func (st *Storage) UploadImage(file *multipart.FileHeader, userID uint, hostelID uint) (string, error) {
	if file.Size > MaxFileSize {
		return "", fmt.Errorf("file size too large. Maximum size is %d bytes", MaxFileSize)
	}

	contentType := file.Header.Get("Content-Type")
	if !image.AllowedImageTypes[contentType] {
		return "", fmt.Errorf("invalid file type. Allowed types are: jpeg, png, webp")
	}

	// Optimize edilmiş halini al
	buf, encodedType, err := image.ProcessImage(file)
	if err != nil {
		return "", err
	}

	// Dosya adı: user_id/hostel_id/timestamp_original_name
	fileName := fmt.Sprintf("%d/%d/%d_%s",
		userID,
		hostelID,
		time.Now().Unix(),
		filepath.Base(file.Filename),
	)

	_, err = st.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(st.bucket),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(encodedType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload to S3: %v", err)
	}

	// Public URL döndür
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", st.bucket, st.region, fileName), nil
}

// UploadAvatar profil resmini avatars/ altına yükler
func (st *Storage) UploadAvatar(file *multipart.FileHeader, username string) (string, error) {
	if file.Size > MaxFileSize {
		return "", fmt.Errorf("file size too large. Maximum size is %d bytes", MaxFileSize)
	}

	contentType := file.Header.Get("Content-Type")
	if !image.AllowedImageTypes[contentType] {
		return "", fmt.Errorf("invalid file type. Allowed types are: jpeg, png, webp")
	}

	buf, encodedType, err := image.ProcessImage(file)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("avatars/%s_%d%s",
		username,
		time.Now().Unix(),
		filepath.Ext(file.Filename),
	)

	_, err = st.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(st.bucket),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(encodedType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", st.bucket, st.region, fileName), nil
}

// DeleteImage S3'ten resmi siler
func (st *Storage) DeleteImage(imageURL string) error {
	// URL'den key'i çıkar
	parts := strings.Split(imageURL, "/")
	key := strings.Join(parts[3:], "/")

	_, err := st.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(st.bucket),
		Key:    aws.String(key),
	})

	return err
}
