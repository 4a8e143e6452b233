package catalog

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/cryptogear/backend/pkg/db/models"
	"github.com/cryptogear/backend/pkg/enums"
)

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// seedProducts returns the fixture catalog used to bootstrap fresh
// environments.
func seedProducts() []models.Product {
	return []models.Product{
		{
			Name:        "CryptoPhone Pro X",
			Description: "Secure smartphone with built-in hardware wallet and encrypted communications. Features quantum-resistant encryption and biometric security.",
			Price:       price("999.99"),
			CryptoPrice: price("999.99"),
			Category:    enums.ProductCategoryPhones,
			ImageURL:    "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=800",
			Stock:       50,
			Features:    pq.StringArray{"Hardware Wallet", "Encrypted Calls", "Biometric Security", "6.7 inch OLED"},
		},
		{
			Name:        "BlockChain Laptop Elite",
			Description: "High-performance laptop optimized for crypto trading and mining. 32GB RAM, RTX 4080, advanced cooling system.",
			Price:       price("2499.99"),
			CryptoPrice: price("2499.99"),
			Category:    enums.ProductCategoryLaptops,
			ImageURL:    "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=800",
			Stock:       30,
			Features:    pq.StringArray{"Intel i9", "32GB RAM", "RTX 4080", "1TB NVMe SSD"},
		},
		{
			Name:        "MetaVision AR Glass",
			Description: "Next-gen AR glasses with blockchain integration. View real-time crypto prices and NFTs in augmented reality.",
			Price:       price("1499.99"),
			CryptoPrice: price("1499.99"),
			Category:    enums.ProductCategoryMetaglass,
			ImageURL:    "https://images.unsplash.com/photo-1612480797665-c96d261eae09?w=800",
			Stock:       20,
			Features:    pq.StringArray{"AR Display", "Blockchain Integration", "Voice Control", "8 hours battery"},
		},
		{
			Name:        "Web3 Camera 4K",
			Description: "Professional camera with NFT minting capabilities. Mint your photos directly to blockchain with built-in crypto wallet.",
			Price:       price("899.99"),
			CryptoPrice: price("899.99"),
			Category:    enums.ProductCategoryCameras,
			ImageURL:    "https://images.unsplash.com/photo-1502920917128-1aa500764cbd?w=800",
			Stock:       40,
			Features:    pq.StringArray{"4K Video", "NFT Minting", "Built-in Wallet", "AI Enhancement"},
		},
		{
			Name:        "SecurePhone Mini",
			Description: "Compact secure phone with hardware encryption. Perfect for secure communications and crypto transactions on the go.",
			Price:       price("599.99"),
			CryptoPrice: price("599.99"),
			Category:    enums.ProductCategoryPhones,
			ImageURL:    "https://images.unsplash.com/photo-1598327105666-5b89351aff97?w=800",
			Stock:       60,
			Features:    pq.StringArray{"Compact Design", "Hardware Encryption", "Long Battery Life", "5G Support"},
		},
		{
			Name:        "CryptoBook Air",
			Description: "Lightweight laptop with secure enclave for crypto keys. Perfect for traders who need portability and security.",
			Price:       price("1799.99"),
			CryptoPrice: price("1799.99"),
			Category:    enums.ProductCategoryLaptops,
			ImageURL:    "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=800",
			Stock:       35,
			Features:    pq.StringArray{"Ultra-light", "Secure Enclave", "16GB RAM", "All-day Battery"},
		},
		{
			Name:        "DecentralVision Pro",
			Description: "Premium AR/VR headset for metaverse exploration. Experience Web3 in immersive virtual reality.",
			Price:       price("1999.99"),
			CryptoPrice: price("1999.99"),
			Category:    enums.ProductCategoryMetaglass,
			ImageURL:    "https://images.unsplash.com/photo-1622979135225-d2ba269cf1ac?w=800",
			Stock:       15,
			Features:    pq.StringArray{"VR/AR Dual Mode", "4K per eye", "Wireless", "Metaverse Ready"},
		},
		{
			Name:        "BlockCam Studio",
			Description: "Professional studio camera with blockchain authentication. Every photo is timestamped and can be verified on-chain.",
			Price:       price("1599.99"),
			CryptoPrice: price("1599.99"),
			Category:    enums.ProductCategoryCameras,
			ImageURL:    "https://images.unsplash.com/photo-1606980623478-c63a7c5d3f86?w=800",
			Stock:       25,
			Features:    pq.StringArray{"6K Video", "Blockchain Auth", "Pro Lens Mount", "RAW Support"},
		},
	}
}
