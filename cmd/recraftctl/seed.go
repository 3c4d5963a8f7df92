// AngelaMos | 2026
// seed.go

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/recraft/internal/auth"
	"github.com/carterperez-dev/recraft/internal/cache"
	"github.com/carterperez-dev/recraft/internal/core"
	"github.com/carterperez-dev/recraft/internal/post"
	"github.com/carterperez-dev/recraft/internal/product"
	"github.com/carterperez-dev/recraft/internal/seed"
	"github.com/carterperez-dev/recraft/internal/user"
)

func newSeedCommand(opts *rootOptions) *cobra.Command {
	seedOpts := seed.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo artisans, buyers and listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := opts.load()
			if err != nil {
				return err
			}

			db, err := core.NewDatabase(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // process exit

			var listings *cache.Cache
			if rdb, redisErr := core.NewRedis(ctx, cfg.Redis); redisErr != nil {
				slog.Warn("redis unavailable, listing cache will expire on its own", "error", redisErr)
			} else {
				defer rdb.Close() //nolint:errcheck // process exit
				listings = cache.New(rdb.Client, cfg.Cache.ListingTTL)
			}

			jwtManager, err := auth.NewJWTManager(cfg.JWT)
			if err != nil {
				return err
			}

			userSvc := user.NewService(user.NewRepository(db.DB), listings)
			seeder := seed.New(
				auth.NewService(jwtManager, userSvc),
				product.NewService(product.NewRepository(db.DB), listings),
				post.NewService(post.NewRepository(db.DB), listings),
				seedOpts,
			)

			res, err := seeder.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"seeded %d artisans, %d buyers, %d products, %d posts, %d likes (password %q)\n",
				res.Artisans, res.Buyers, res.Products, res.Posts, res.Likes, seedOpts.Password,
			)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&seedOpts.Artisans, "artisans", seedOpts.Artisans, "artisan accounts to create")
	f.IntVar(&seedOpts.Buyers, "buyers", seedOpts.Buyers, "buyer accounts to create")
	f.IntVar(&seedOpts.ProductsPerArtisan, "products", seedOpts.ProductsPerArtisan, "products per artisan")
	f.IntVar(&seedOpts.PostsPerUser, "posts", seedOpts.PostsPerUser, "inspiration posts per account")
	f.StringVar(&seedOpts.Password, "password", seedOpts.Password, "password for every seeded account")
	f.Int64Var(&seedOpts.Seed, "seed", 0, "random seed, 0 picks one")

	return cmd
}
