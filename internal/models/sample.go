package models

// SampleJobs returns the demo collection used to exercise the analytics and
// the tracker without a store: one application per pipeline stage of
// interest, with realistic interview notes.
func SampleJobs() []Job {
	return []Job{
		{
			RecordID:    "sample-1",
			Company:     "Tech Solutions Inc.",
			Position:    "Frontend Developer",
			DateApplied: "2025-02-15",
			Status:      StatusInterview,
			Priority:    PriorityHigh,
			Notes:       "Second interview scheduled for March 5th",
			Interviews: InterviewList{
				{
					Date:         "2025-02-25",
					Type:         InterviewTechnical,
					Notes:        "Was asked about React hooks, state management, and CSS grid. Struggled with system design question.",
					Strengths:    "Explained React concepts clearly, showed portfolio effectively",
					Improvements: "Need to practice system design questions and whiteboarding",
					Rating:       7,
				},
			},
		},
		{
			RecordID:    "sample-2",
			Company:     "Data Analytics Co.",
			Position:    "Data Scientist",
			DateApplied: "2025-02-10",
			Status:      StatusApplied,
			Priority:    PriorityMedium,
			Notes:       "Submitted portfolio with application",
			Interviews:  InterviewList{},
		},
		{
			RecordID:    "sample-3",
			Company:     "Startup Ventures",
			Position:    "Product Manager",
			DateApplied: "2025-01-28",
			Status:      StatusOffer,
			Priority:    PriorityHigh,
			Notes:       "$85K, benefits pending, must respond by March 15th",
			Interviews: InterviewList{
				{
					Date:         "2025-02-05",
					Type:         InterviewBehavioral,
					Notes:        "Spoke with potential manager and team. Asked about product development process and user research methods.",
					Strengths:    "Connected well with the team, discussed past projects effectively",
					Improvements: "Could have asked more questions about company culture",
					Rating:       8,
				},
				{
					Date:         "2025-02-15",
					Type:         InterviewCaseStudy,
					Notes:        "Presented solution for improving user onboarding flow. Panel of 3 senior PMs.",
					Strengths:    "Data-driven approach, clear presentation style",
					Improvements: "Could have addressed monetization strategy more deeply",
					Rating:       9,
				},
			},
		},
	}
}
