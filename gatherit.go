// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package gatherit

import (
	"io"
	"log/slog"

	"github.com/poiesic/gatherit/ai"
	"github.com/poiesic/gatherit/ai/openai"
	"github.com/poiesic/gatherit/extract"
	"github.com/poiesic/gatherit/ingest"
	"github.com/poiesic/gatherit/rederive"
	"github.com/poiesic/gatherit/storage"
	"github.com/poiesic/gatherit/storage/badger"
)

// Service bundles the storage backend, repositories and AI provider that the
// ingestion pipeline and maintenance jobs are built from.
type Service struct {
	backend        *badger.Backend
	postRepo       storage.PostRepository
	feedRepo       storage.FeedRepository
	checkpointRepo storage.CheckpointRepository
	provider       ai.AIProvider
	logger         *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig sets the AI endpoint configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	// Apply options
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create post repository
	postRepo, err := badger.NewPostRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create feed repository
	feedRepo, err := badger.NewFeedRepository(backend)
	if err != nil {
		postRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create checkpoint repository
	checkpointRepo := badger.NewCheckpointRepository(backend)

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		feedRepo.Close()
		postRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:        backend,
		postRepo:       postRepo,
		feedRepo:       feedRepo,
		checkpointRepo: checkpointRepo,
		provider:       provider,
		logger:         slog.Default(),
	}, nil
}

func (s *Service) Close() error {
	// Close AI provider first
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := s.feedRepo.Close(); err != nil {
		s.logger.Error("error closing feed repository", "err", err)
		return err
	}
	if err := s.postRepo.Close(); err != nil {
		s.logger.Error("error closing post repository", "err", err)
		return err
	}

	// Close backend
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) PostRepository() storage.PostRepository {
	return s.postRepo
}

func (s *Service) FeedRepository() storage.FeedRepository {
	return s.feedRepo
}

func (s *Service) CheckpointRepository() storage.CheckpointRepository {
	return s.checkpointRepo
}

func (s *Service) AIProvider() ai.AIProvider {
	return s.provider
}

// NewIngestionPipeline builds a pipeline with live HTTP extractors.
func (s *Service) NewIngestionPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	youtube := extract.NewYouTubeClient()
	return ingest.NewPipeline(
		s.postRepo,
		s.feedRepo,
		s.provider,
		extract.NewReadabilityExtractor(nil),
		extract.NewVideoExtractor(youtube, youtube),
		extract.NewFeedFetcher(nil),
		opts...,
	)
}

// NewRederiver builds a batch re-embedding job over all stored posts.
func (s *Service) NewRederiver(config *rederive.Config, progress io.Writer) *rederive.Rederiver {
	return rederive.NewRederiver(s.postRepo, s.checkpointRepo, s.provider.Embedder(), config, progress)
}
