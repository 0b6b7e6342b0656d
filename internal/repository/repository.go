package repository

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/devstats/social-card-service/internal/config"
	"github.com/devstats/social-card-service/internal/repository/redisrepo"
	"github.com/devstats/social-card-service/internal/repository/s3repo"
	"github.com/redis/go-redis/v9"
)

type Repository struct {
	Objects *s3repo.S3Repository
	Redis   *redisrepo.RedisRepository
}

func New(s3client *s3.Client, s3cfg config.S3Config, rdb *redis.Client) *Repository {
	return &Repository{
		Objects: s3repo.New(s3client, s3cfg),
		Redis:   redisrepo.New(rdb),
	}
}
